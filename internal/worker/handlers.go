package worker

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/angeloszaimis/edge-worker/internal/clientinfo"
	"github.com/angeloszaimis/edge-worker/internal/env"
	"github.com/angeloszaimis/edge-worker/internal/response"
)

const (
	EnvKeyMyVar = "MY_VAR"
	NoEnvValue  = "无环境变量"

	MessageContent    = "Hello, World!"
	MessageTaskResult = "message路径异步任务"
)

type messagePayload struct {
	Content string `json:"content"`
	clientinfo.Info
}

type randomPayload struct {
	RandomUUID string `json:"random_uuid"`
	clientinfo.Info
}

type notFoundPayload struct {
	NotFoundPath string `json:"not_found_path"`
	clientinfo.Info
}

func (wk *Worker) handleMessage(w http.ResponseWriter, r *http.Request, vars env.Env, ec ExecutionContext) {
	info := clientinfo.Extract(r.Header)

	wk.logger.Info("Env example", slog.String(EnvKeyMyVar, vars.Get(EnvKeyMyVar, NoEnvValue)))

	if ec != nil {
		ec.WaitUntil(resolveMessageTask)
		wk.logger.Info("Background task scheduled", slog.String("route", RouteMessage))
	}

	response.Write(w, messagePayload{
		Content: MessageContent,
		Info:    info,
	})
}

func resolveMessageTask(context.Context) (any, error) {
	return MessageTaskResult, nil
}

func (wk *Worker) handleRandom(w http.ResponseWriter, r *http.Request, _ env.Env, _ ExecutionContext) {
	info := clientinfo.Extract(r.Header)

	wk.logger.Info("Request method", slog.String("method", r.Method))

	query := r.URL.Query()
	if query.Has("id") {
		wk.logger.Info("Query parameter", slog.String("id", query.Get("id")))
	} else {
		wk.logger.Info("Query parameter", slog.Any("id", nil))
	}

	response.Write(w, randomPayload{
		RandomUUID: wk.newID(),
		Info:       info,
	})
}

func (wk *Worker) handleNotFound(w http.ResponseWriter, r *http.Request, _ env.Env, _ ExecutionContext) {
	info := clientinfo.Extract(r.Header)
	path := requestPath(r)

	wk.logger.Info("Path not found", slog.String("path", path))

	response.Write(w, notFoundPayload{
		NotFoundPath: path,
		Info:         info,
	}, response.WithCode(http.StatusNotFound), response.WithMessage(response.NotFoundMessage))
}
