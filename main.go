/*
Copyright © 2025 alzyras
*/
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/alzyras/ankicraft/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
}
