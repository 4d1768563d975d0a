package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"pitchbook/models"
)

const TypeSendNotification = "notification:send"

func NewNotificationTask(event models.NotificationEvent) (*asynq.Task, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendNotification, b), nil
}
