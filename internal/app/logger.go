package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Freeeeeet/tutor_desk/internal/model"
)

// ServiceName попадает в каждую запись лога
const ServiceName = "tutor_desk"

// NewLogger: production пишет JSON без сэмплирования, иначе цветная консоль.
// level ("debug", "warn", ...) перекрывает уровень окружения; неизвестное значение игнорируется.
func NewLogger(production bool, level string) *zap.Logger {
	var config zap.Config

	switch {
	case production:
		config = zap.NewProductionConfig()
		config.Sampling = nil
		config.EncoderConfig.TimeKey = "ts"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	}

	if lvl, err := zapcore.ParseLevel(level); level != "" && err == nil {
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	config.OutputPaths = []string{"stdout"}
	config.InitialFields = map[string]interface{}{
		"service": ServiceName,
	}

	logger, err := config.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}

	return logger
}

// TutorLogger дочерний логгер с полями вошедшего преподавателя
func TutorLogger(logger *zap.Logger, identity *model.Identity) *zap.Logger {
	if identity == nil {
		return logger
	}
	return logger.With(
		zap.String("tutor_id", identity.TutorID),
		zap.Int64("chat_id", identity.ChatID),
	)
}
