package main

// General API documentation for swaggo. Run `swag init -g cmd/fasttextd/docs.go -o docs` to regenerate.
//
// @title           fasttextd API
// @version         1.0
// @description     HTTP API over pre-trained fastText models: dictionary lookups, word and sentence vectors, label prediction.
//
// @contact.name   fasttextd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
