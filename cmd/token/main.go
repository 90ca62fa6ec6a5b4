// token emite un JWT de operador para pruebas locales.
//
// Uso: go run ./cmd/token -user <id> -role admin|bodeguero|vendedor
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/paintshop-api/pkg/config"
	"github.com/jhoicas/paintshop-api/pkg/jwt"
)

func main() {
	user := flag.String("user", "operador-local", "ID del operador")
	role := flag.String("role", jwt.RoleBodeguero, "rol: admin, bodeguero o vendedor")
	flag.Parse()

	if !jwt.ValidRole(*role) {
		fmt.Fprintf(os.Stderr, "rol no soportado: %q\n", *role)
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
