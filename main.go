package main

import "notes-hub-api/config"

func main() {
	config.RunServer()
}
