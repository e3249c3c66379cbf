package pipeline

import (
	"github.com/talenthunt/talenthunt/dataset"
)

// RawData is the output of the load stage.
type RawData struct {
	Users []dataset.User
	Repos []dataset.Repo
}

// Load reads both raw sources fully into memory. Either source missing is
// a fatal, propagated error; there is no partial or fallback data.
func Load(cfg Config) (RawData, error) {
	users, err := dataset.ReadUsers(cfg.UsersPath)
	if err != nil {
		return RawData{}, err
	}

	repos, err := dataset.ReadRepos(cfg.ReposPath)
	if err != nil {
		return RawData{}, err
	}

	return RawData{Users: users, Repos: repos}, nil
}
