// @title           AppHooks API
// @version         1.0
// @description     Entrega e verificação de webhooks assinados para apps instalados em institutos

// @contact.name   Suporte da API

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Digite "Bearer " seguido da ADMIN_API_KEY
package main

import (
	"log"
	"os"

	"apphooks/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalf("Erro ao criar aplicação: %v", err)
	}

	defer func() {
		if err := application.Close(); err != nil {
			log.Printf("Erro ao fechar aplicação: %v", err)
		}
	}()

	if err := application.Run(); err != nil {
		log.Printf("Erro ao executar aplicação: %v", err)
		os.Exit(1)
	}
}
