// Package events connects training and serving through RabbitMQ.
//
// The pipeline publishes a run-completed event after each successful
// training run. Serving instances consume the same queue and hot-reload
// the latest model, so a freshly trained model reaches the prediction
// endpoints without a restart.
//
// Messaging is optional. When disabled through configuration the pipeline
// runs without publishing and serving instances only load models on
// startup or on explicit request.
package events
