// Package api exposes the prediction and model-management HTTP surface.
//
// Endpoints:
//
//	GET  /                        service banner
//	GET  /health                  liveness probe
//	POST /predict                 embed a single text
//	POST /predict/similarity      cosine similarity of two texts
//	GET  /models/info             current model version and cache state
//	POST /models/load/{version}   pin a specific model version
//	POST /agent_search            vector search plus AI scoring
//
// Prediction endpoints accept an optional model_version to serve from a
// cached pinned version without changing the current model. Agent search
// writes its scores back into the profile table, where the next training
// run picks them up for evaluation.
package api
