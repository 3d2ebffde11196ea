//go:build tools

// Package tools pins the versions of the code generators and linters run
// against this module. Nothing here is linked into cmd/app or cmd/bomctl.
package tools

//go:generate go run github.com/sqlc-dev/sqlc/cmd/sqlc generate
//go:generate go run github.com/swaggo/swag/cmd/swag init -g cmd/app/main.go -o docs --parseInternal
//go:generate go run github.com/vektra/mockery/v2 --dir internal/repository --name Catalog --output internal/repository/mocks

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint" // make lint
	_ "github.com/pressly/goose/v3/cmd/goose"               // ad hoc migrations against DB_* settings
	_ "github.com/sqlc-dev/sqlc/cmd/sqlc"                   // postgres catalog queries
	_ "github.com/swaggo/swag/cmd/swag"                     // /swagger docs
	_ "github.com/vektra/mockery/v2"                        // repository mocks
	_ "golang.org/x/perf/cmd/benchstat"                     // comparing engine benchmark runs
)
