package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/messaging/kafka"
)

// initKafkaProducer creates a producer when brokers is non-empty. Returns
// nil, nil when brokers is empty; a connection failure is returned so the
// caller decides whether to continue without kafka.
func initKafkaProducer(brokers string, logger *log.Entry) (*kafka.Producer, error) {
	if brokers == "" {
		return nil, nil
	}

	brokerList := strings.Split(brokers, ",")
	producer, err := kafka.NewProducer(brokerList)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil, err
	}

	logger.WithField("brokers", brokerList).Info("kafka producer initialized")
	return producer, nil
}

// closeKafka closes the producer if it exists.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
