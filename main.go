package main

import (
	"context"
	"log/slog"
	"symposium-agent-backend/config"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/router"
	"symposium-agent-backend/service/audit"
	knowledgebase "symposium-agent-backend/service/knowledge-base"
	"symposium-agent-backend/service/mq"
)

func main() {
	if err := dao.Init(); err != nil {
		slog.Error("Failed to initialize database", "err", err)
		return
	}

	if err := knowledgebase.Init(context.Background()); err != nil {
		slog.Error("Failed to initialize knowledge base indexer", "err", err)
		return
	}

	if err := mq.Run(); err != nil {
		slog.Error("Failed to start mq service", "err", err)
		return
	}
	defer mq.Shutdown()

	audit.RecorderInstance.Run()

	r := router.Register()
	addr := config.Cfg.Server.Host + ":" + config.Cfg.Server.Port
	if err := r.Run(addr); err != nil {
		slog.Error("Failed to run server", "err", err)
	}
}
