package worker

import (
	"noticegen-web/internal/config"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func RegisterHandlers(mux *asynq.ServeMux, db *sqlx.DB, redis *redis.Client, cfg *config.Config) {
	noticeHandler := NewNoticeTaskHandler(db, redis, cfg)

	mux.HandleFunc("notice:generate", noticeHandler.Handle)
}
