package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"petconnect/config"
	"petconnect/internal/pkg/cache"
	"petconnect/internal/pkg/database"
	"petconnect/internal/pkg/logger"
	"petconnect/internal/pkg/payment"
	"petconnect/internal/pkg/token"

	"petconnect/internal/api/adoption"
	"petconnect/internal/api/auth"
	"petconnect/internal/api/blog"
	"petconnect/internal/api/donation"
	"petconnect/internal/api/followup"
	"petconnect/internal/api/form"
	"petconnect/internal/api/pet"
	"petconnect/internal/api/router"
	"petconnect/internal/api/stats"
	"petconnect/internal/domain"
	"petconnect/internal/repository/adoptionrepo"
	"petconnect/internal/repository/blogrepo"
	"petconnect/internal/repository/donationrepo"
	"petconnect/internal/repository/followuprepo"
	"petconnect/internal/repository/formrepo"
	"petconnect/internal/repository/petrepo"
	"petconnect/internal/repository/statsrepo"
	"petconnect/internal/repository/userrepo"
	"petconnect/internal/service/adoptionservice"
	"petconnect/internal/service/blogservice"
	"petconnect/internal/service/donationservice"
	"petconnect/internal/service/followupservice"
	"petconnect/internal/service/formservice"
	"petconnect/internal/service/lifecycle"
	"petconnect/internal/service/petservice"
	"petconnect/internal/service/statsservice"
	"petconnect/internal/service/userservice"
)

func main() {
	log.Println("⚡ Inicializando serviço PetConnect...")

	// O godotenv.Load() procura por um arquivo .env na raiz; ausência
	// não é fatal, as variáveis podem estar no ambiente do sistema.
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// Infraestrutura: PostgreSQL e Redis.
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	stripeProvider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeSuccessURL, cfg.StripeCancelURL)

	// Repositórios.
	petRepo := petrepo.NewPetRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	formRepo := formrepo.NewFormSubmissionRepository(db, cfg.DBTimeout, log)
	adoptionRepo := adoptionrepo.NewAdoptionRequestRepository(db, cfg.DBTimeout, log)
	followUpRepo := followuprepo.NewFollowUpRepository(db, cfg.DBTimeout, log)
	donationRepo := donationrepo.NewDonationRepository(db, cfg.DBTimeout, log)
	blogRepo := blogrepo.NewBlogRepository(db, cfg.DBTimeout, log)
	statsRepo := statsrepo.NewStatsRepository(db, cfg.DBTimeout, log)

	// Serviços. A tabela de transições liga as mudanças de status aos
	// efeitos colaterais do fluxo de adoção.
	followUpSvc := followupservice.NewService(followUpRepo, adoptionRepo, log)

	transitions := lifecycle.NewTable(log)
	transitions.Register(lifecycle.EntityAdoptionRequest, string(domain.RequestAprobada), func(ctx context.Context, petID string) error {
		return petRepo.UpdateStatus(ctx, petID, domain.PetAdoptado)
	})
	transitions.Register(lifecycle.EntityPet, string(domain.PetEnSeguimiento), func(ctx context.Context, petID string) error {
		_, err := followUpSvc.StartFollowUpProcess(ctx, petID)
		return err
	})

	petSvc := petservice.NewService(petRepo, transitions, log)
	userSvc := userservice.NewService(userRepo, tokenSvc, log)
	adoptionSvc := adoptionservice.NewService(adoptionRepo, formRepo, transitions, log)
	donationSvc := donationservice.NewService(donationRepo, stripeProvider, log)
	blogSvc := blogservice.NewService(blogRepo, log)
	formSvc := formservice.NewService(formRepo, log)
	statsSvc := statsservice.NewService(statsRepo, log)

	// Handlers e roteador.
	r := router.NewRouter(router.Handlers{
		Auth:     auth.NewHandler(userSvc, log),
		Pet:      pet.NewHandler(petSvc, log),
		Adoption: adoption.NewHandler(adoptionSvc, log),
		FollowUp: followup.NewHandler(followUpSvc, log),
		Donation: donation.NewHandler(donationSvc, log),
		Blog:     blog.NewHandler(blogSvc, log),
		Form:     form.NewHandler(formSvc, log),
		Stats:    stats.NewHandler(statsSvc, log),
	}, router.Deps{
		TokenService: tokenSvc,
		Cache:        cacheClient,
		RateLimit:    cfg.RateLimitMaxRequests,
		RatePeriod:   cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Servidor PetConnect ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
