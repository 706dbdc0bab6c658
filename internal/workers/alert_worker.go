package workers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobmate/internal/services"
)

const (
	DefaultAlertStream = "alerts:stream"
	DefaultAlertGroup  = "alert-workers"
)

// AlertWorkerPool drains alert requests queued by the scheduler. Dispatch runs
// with manual=false, so the frequency throttle applies.
type AlertWorkerPool struct {
	Redis      *redis.Client
	Alerts     services.AlertService
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *AlertWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Alerts == nil {
		return errors.New("AlertWorkerPool missing dependency: Redis/Alerts must be set")
	}
	if p.Stream == "" {
		p.Stream = DefaultAlertStream
	}
	if p.Group == "" {
		p.Group = DefaultAlertGroup
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 4
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	p.Logger.WithFields(logrus.Fields{"stream": p.Stream, "workers": p.NumWorkers}).Info("alert workers started")
	return nil
}

func (p *AlertWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *AlertWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	userID, _ := msg.Values["user_id"].(string)
	if userID == "" {
		return
	}
	log := p.Logger.WithFields(logrus.Fields{
		"redis_id": msg.ID,
		"user_id":  userID,
	})

	res, err := p.Alerts.Dispatch(ctx, userID, false)
	if err != nil {
		log.WithError(err).Warn("alert dispatch failed")
		return
	}
	log.WithFields(logrus.Fields{"sent": res.Sent, "message": res.Message}).Debug("alert dispatched")
}
