package initializers

import (
	"context"
	"hr-admin-backend/config"
	s3client "hr-admin-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3() {
	client, err := s3client.NewClient(config.Conf.S3.Endpoint, config.Conf.S3.AccessKeyID,
		config.Conf.S3.SecretAccessKey, config.Conf.S3.BucketName, *config.Conf.S3.UseSSL)
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}
	if err = client.MakeBucket(context.Background()); err != nil {
		log.WithError(err).Error("S3 соединение не удалось, бакет недоступен")
	}
	s3client.Client = client
	log.Info("S3 клиент успешно инициализирован")
}
