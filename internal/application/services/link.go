package services

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-exchange-api/internal/application/ports"
	domain "file-exchange-api/internal/domain/file"
	"file-exchange-api/internal/infrastructure/token"
)

// ErrInvalidOrExpiredLink is the only failure Resolve reports. Forged
// and expired tokens are deliberately not distinguishable to the
// caller, so responses leak nothing about signature validity.
var ErrInvalidOrExpiredLink = errors.New("invalid or expired download link")

// Download links live for one hour. Not configurable per call.
const downloadLinkTTL = time.Hour

type LinkService struct {
	codec    *token.Service
	mCounter *prometheus.CounterVec
	logger   *zap.Logger
}

func NewLinkService(
	codec *token.Service,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.LinkIssuer {
	return &LinkService{
		codec:    codec,
		mCounter: mCounter,
		logger:   logger,
	}
}

// Issue does not check that the id exists; callers verify against the
// registry before issuing and again at resolve time.
func (ls *LinkService) Issue(fileID domain.ID) (string, error) {
	t, err := ls.codec.MintDownload(uint64(fileID), downloadLinkTTL)
	if err != nil {
		return "", err
	}

	ls.mCounter.WithLabelValues("download_links_issued_total").Inc()

	return t, nil
}

func (ls *LinkService) Resolve(tokenStr string) (domain.ID, error) {
	id, err := ls.codec.ParseDownload(tokenStr)
	if err != nil {
		// The log keeps the expired/forged distinction; the caller
		// never sees it.
		ls.logger.Debug("download link rejected", zap.Error(err))
		return 0, ErrInvalidOrExpiredLink
	}

	return domain.ID(id), nil
}
