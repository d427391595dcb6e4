package watch

import "github.com/gen2brain/beeep"

// DesktopNotifier sends alerts through the OS notification center.
func DesktopNotifier(title, message string) error {
	return beeep.Notify(title, message, "")
}
