package config

import (
	"pdf-footer-remover/internal/domain"
	"pdf-footer-remover/internal/repository"
	"pdf-footer-remover/internal/service"
	"pdf-footer-remover/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	Storage           domain.ResultStorage
	SessionRepository domain.SessionRepository
	Redactor          domain.FooterRedactor
	PreviewRenderer   domain.PreviewRenderer
	DocumentService   domain.DocumentService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	fillColor, err := domain.ParseFillColor(config.GetFillColor())
	if err != nil {
		appLogger.Warn("Invalid FILL_COLOR, falling back to white", "value", config.GetFillColor(), "error", err)
		fillColor = domain.White
	}

	storage, err := service.NewLocalStorage(config.GetTempPath(), appLogger)
	if err != nil {
		return nil, err
	}

	sessionRepo := repository.NewMemorySessionRepository()
	redactor := service.NewRedactionService(appLogger)
	previewRenderer := service.NewFitzPreviewRenderer(appLogger)

	documentService := service.NewDocumentService(
		redactor,
		previewRenderer,
		storage,
		sessionRepo,
		config,
		fillColor,
		appLogger,
	)

	return &Container{
		Config:            config,
		Logger:            appLogger,
		Storage:           storage,
		SessionRepository: sessionRepo,
		Redactor:          redactor,
		PreviewRenderer:   previewRenderer,
		DocumentService:   documentService,
	}, nil
}
