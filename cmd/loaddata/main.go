// Command loaddata nạp dữ liệu catalog (ingredients, tags) từ file JSON
//
//	go run ./cmd/loaddata -ingredients data/ingredients.json -tags data/tags.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/config"
	ingredientModel "foodgram-backend/internal/domains/ingredient/model"
	ingredientRepo "foodgram-backend/internal/domains/ingredient/repository"
	ingredientService "foodgram-backend/internal/domains/ingredient/service"
	tagModel "foodgram-backend/internal/domains/tag/model"
	tagRepo "foodgram-backend/internal/domains/tag/repository"
	tagService "foodgram-backend/internal/domains/tag/service"
	infraCache "foodgram-backend/internal/infrastructure/cache"
	"foodgram-backend/internal/infrastructure/database"
	"foodgram-backend/migrations"
	"foodgram-backend/pkg/cache"
	"foodgram-backend/pkg/logger"
)

var errNothingToLoad = errors.New("nothing to load: pass -ingredients and/or -tags")

func main() {
	ingredientsPath := flag.String("ingredients", "", "path to ingredients.json")
	tagsPath := flag.String("tags", "", "path to tags.json")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	// os.Exit nằm ngoài run để các defer Close trong run được chạy
	if err := run(cfg, *ingredientsPath, *tagsPath); err != nil {
		log.Error().Err(err).Msg("loaddata failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, ingredientsPath, tagsPath string) error {
	if ingredientsPath == "" && tagsPath == "" {
		return errNothingToLoad
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool, migrations.FS); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	// Cache chỉ dùng để invalidate list đang được API cache
	var c cache.Cache
	redis := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redis.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, cached catalog may be stale until TTL", err)
	} else {
		defer redis.Close()
		c = redis
	}

	if ingredientsPath != "" {
		var items []ingredientModel.SeedIngredient
		if err := readJSON(ingredientsPath, &items); err != nil {
			return fmt.Errorf("read ingredients: %w", err)
		}

		svc := ingredientService.NewIngredientService(ingredientRepo.NewPostgresRepository(db.Pool), c, cfg.Redis.CacheTTL)
		n, err := svc.Import(ctx, items)
		if err != nil {
			return fmt.Errorf("import ingredients: %w", err)
		}
		logger.Info("ingredients loaded", map[string]interface{}{"count": n, "file": ingredientsPath})
	}

	if tagsPath != "" {
		var items []tagModel.SeedTag
		if err := readJSON(tagsPath, &items); err != nil {
			return fmt.Errorf("read tags: %w", err)
		}

		svc := tagService.NewTagService(tagRepo.NewPostgresRepository(db.Pool), c, cfg.Redis.CacheTTL)
		n, err := svc.Import(ctx, items)
		if err != nil {
			return fmt.Errorf("import tags: %w", err)
		}
		logger.Info("tags loaded", map[string]interface{}{"created": n, "total": len(items), "file": tagsPath})
	}
	return nil
}

func readJSON(path string, dest any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
