package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"finflow/src/clients/gemini"
	"finflow/src/clients/truncgil"
	"finflow/src/config"
	"finflow/src/database"
	"finflow/src/repositories"
	"finflow/src/services"
	"finflow/src/utils"
	redis_utils "finflow/src/utils/redis"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	Auth            services.AuthServiceI
	Prices          services.PriceServiceI
	Valuation       services.ValuationServiceI
	Leaderboard     services.LeaderboardServiceI
	Advice          services.AdviceServiceI
	Export          services.ExportServiceI
	TransactionRepo repositories.TransactionRepository
	AssetRepo       repositories.AssetRepository
	UserRepo        repositories.UserRepository
	Logger          *logrus.Logger
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	logger := utils.NewLogger(logrus.InfoLevel, false, "")

	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	redisHandler, err := redis_utils.NewRedisHandler(cfg)
	if err != nil {
		return nil, err
	}

	truncgilClient, err := truncgil.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	geminiClient, err := gemini.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	transactionRepo := repositories.NewTransactionRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	userRepo := repositories.NewUserRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	priceService := services.NewPriceService(truncgilClient, redisHandler)
	leaderboardService := services.NewLeaderboardService(redisHandler, logger)

	return &Handler{
		Auth:            services.NewAuthService(userRepo, leaderboardService),
		Prices:          priceService,
		Valuation:       services.NewValuationService(transactionRepo, assetRepo, priceService),
		Leaderboard:     leaderboardService,
		Advice:          services.NewAdviceService(geminiClient),
		Export:          services.NewExportService(transactionRepo, assetRepo, settingRepo, db),
		TransactionRepo: transactionRepo,
		AssetRepo:       assetRepo,
		UserRepo:        userRepo,
		Logger:          logger,
	}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else if err != nil {
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

// currentUserID reads the session's user from the X-User-ID header. The PIN
// flow in front of this API resolves the session; an absent or malformed
// header is a normal unauthenticated state and maps to user 0, for which all
// ledger-scoped reads return zero values.
func currentUserID(r *http.Request) int {
	id, err := strconv.Atoi(r.Header.Get("X-User-ID"))
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
