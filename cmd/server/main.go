package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "chatarra-market/docs" // Swagger docs
)

// @title Chatarra Market API
// @version 1.0
// @description Marketplace de material reciclable: vendedores publican ofertas y administradores las gestionan.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email soporte@chatarra.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8081
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chatarra",
	Short: "Chatarra Market API server",
	Long:  "Backend of the scrap-material marketplace. Without a subcommand it starts the HTTP server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
