package embedding

import "go.uber.org/fx"

// FXModule provides the embedding Config and Registry.
var FXModule = fx.Module("embedding",
	fx.Provide(
		NewConfig,
		NewRegistry,
	),
)
