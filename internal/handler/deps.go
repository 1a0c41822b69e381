package handler

import (
	"time"

	"checkinhub/internal/app/activity"
	"checkinhub/internal/configs"
)

type AppDeps struct {
	Coordinator *activity.Coordinator
	Config      *configs.AppConfig
	StartedAt   time.Time
}
