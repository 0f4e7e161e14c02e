package rabbitmq

// ExchangeNotifications direct-exchange для всех уведомлений.
const ExchangeNotifications = "notifications"

// Очередь и ключ маршрутизации для подтверждений заявок к врачу.
const (
	QueueDoctorRequest      = "notification.doctor_request"
	RoutingKeyDoctorRequest = "doctor_request"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueDoctorRequest, RoutingKey: RoutingKeyDoctorRequest},
	}
}
