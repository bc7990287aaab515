package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Control de Rulo API
// @version         0.1.0
// @description     Record, list and summarize currency round trips; preview and simulate them.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
