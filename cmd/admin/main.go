package main

import (
	"context"
	"os"

	"workforce/config"
	"workforce/di"
	"workforce/internal/domains/user/model/dto"
	"workforce/shared/constant"
	"workforce/shared/logger"
	"workforce/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	argLength     = 4
	commandCreate = "create"
)

// Creates the first administrator. Signup only ever issues the user role.
//
//	admin create <email> <password>
func main() {
	logger.InitLogger()

	if len(os.Args) < argLength || os.Args[1] != commandCreate {
		log.Fatal().Msg("Usage: admin create <email> <password>")
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	req := dto.CreateUserRequest{
		Email:    os.Args[2],
		Password: os.Args[3],
		Role:     constant.RoleAdmin,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		log.Fatal().Err(err).Msg("Invalid admin credentials")
	}

	res, err := di.InitializeUserService().Create(context.Background(), req)
	if err != nil {
		log.Fatal().Err(err).Str("email", req.Email).Msg("Failed to create admin")
	}

	log.Info().Str("id", res.ID).Str("email", res.Email).Msg("Admin created")
}
