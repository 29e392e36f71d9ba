package main

import (
	"fmt"
	"log"

	"github.com/circleops/salesops-backend/internal/utils"
)

func main() {
	fmt.Println("===========================================")
	fmt.Println("Secret generator for the sales ops backend")
	fmt.Println("===========================================")
	fmt.Println()

	secrets, err := utils.GenerateEnvSecrets()
	if err != nil {
		log.Fatalf("Failed to generate secrets: %v", err)
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	for _, s := range secrets {
		fmt.Printf("%s=%s\n", s.Key, s.Value)
	}
	fmt.Println()
	fmt.Println("Keep these secrets out of version control.")
	fmt.Println("===========================================")
}
