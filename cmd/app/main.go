package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	httpadapter "github.com/petify/reservation-slots-service/internal/adapters/in/http"
	"github.com/petify/reservation-slots-service/internal/adapters/in/rabbitmq"
	"github.com/petify/reservation-slots-service/internal/adapters/out/cache"
	"github.com/petify/reservation-slots-service/internal/adapters/out/logger"
	"github.com/petify/reservation-slots-service/internal/adapters/out/petregistry"
	"github.com/petify/reservation-slots-service/internal/adapters/out/postgres"
	"github.com/petify/reservation-slots-service/internal/config"
	"github.com/petify/reservation-slots-service/internal/core/ports/out"
	"github.com/petify/reservation-slots-service/internal/core/services"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewZerologLogger(cfg.App.Timezone, cfg.IsLocal())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	slotStore, err := postgres.NewSlotStoreAdapter(cfg, mainLogger.WithModule("SlotStoreAdapter"))
	if err != nil {
		log.Error("app.postgres.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer slotStore.Close()

	petRegistry := petregistry.NewPetRegistryAdapter(cfg, mainLogger.WithModule("PetRegistryAdapter"))

	var petCache out.PetCachePort
	if cfg.Cache.Enabled {
		cacheAdapter, err := cache.NewPetCacheAdapter(cfg, mainLogger.WithModule("PetCacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		petCache = cacheAdapter
	}

	slotScheduler := services.NewSlotSchedulerService(
		slotStore,
		petRegistry,
		petCache,
		mainLogger.WithModule("SlotSchedulerService"),
	)

	router := gin.Default()
	controller := httpadapter.NewSlotSchedulerController(
		slotScheduler,
		cfg,
		mainLogger.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router)

	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewPetListener(
			petCache,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
