package common

// D-Bus configuration for desktop notifications (freedesktop.org Desktop
// Notifications Specification)
const (
	NotifyDestination = "org.freedesktop.Notifications"
	NotifyObjectPath  = "/org/freedesktop/Notifications"
	NotifyInterface   = "org.freedesktop.Notifications"
	NotifyMethod      = NotifyInterface + ".Notify"

	// Notification urgency hint values
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// AppName identifies sleepy-hyprland to the notification daemon and in logs
const AppName = "sleepy-hyprland"
