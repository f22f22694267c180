package model

type NotificationKind string

const (
	KindTempWarning  NotificationKind = "temp_warning"
	KindLightWarning NotificationKind = "light_warning"
)

type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Tag     string           `json:"tag"`
}

type Thresholds struct {
	Temperature float64
	Light       float64
}

const (
	DefaultTempThreshold  = 30
	DefaultLightThreshold = 100
)

func DefaultThresholds() Thresholds {
	return Thresholds{
		Temperature: DefaultTempThreshold,
		Light:       DefaultLightThreshold,
	}
}
