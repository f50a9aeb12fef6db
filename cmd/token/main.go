// Command token emite tokens de servicio para integraciones y operación.
// El API solo valida tokens: la emisión vive aquí, fuera del plano HTTP.
//
// Uso:
//
//	JWT_SECRET=... go run ./cmd/token -employee <uuid> -role farmaceuta -minutes 60
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/jwt"
)

func main() {
	employeeID := flag.String("employee", "", "ID del empleado (sub del token)")
	role := flag.String("role", entity.RoleAuxiliar, "rol: admin | farmaceuta | auxiliar")
	minutes := flag.Int("minutes", 0, "minutos de validez (0 = usar JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if *employeeID == "" {
		fmt.Fprintln(os.Stderr, "falta -employee")
		flag.Usage()
		os.Exit(2)
	}
	if !entity.ValidRole(*role) {
		fmt.Fprintf(os.Stderr, "rol desconocido: %s\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no definido")
		os.Exit(1)
	}

	exp := *minutes
	if exp <= 0 {
		exp = cfg.JWT.Expiration
	}

	token, err := jwt.Generate(cfg.JWT.Secret, *employeeID, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
