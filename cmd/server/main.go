package main

import (
	"fmt"
	"os"

	app2 "github.com/IT-Nick/teachassist/internal/app"
)

const defaultConfigPath = "configs/values_examples.yaml"

func main() {
	fmt.Println("app starting")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	app, err := app2.NewApp(configPath)
	if err != nil {
		panic(err)
	}
	defer app.Close()

	if err := app.ListenAndServe(); err != nil {
		panic(err)
	}
}
