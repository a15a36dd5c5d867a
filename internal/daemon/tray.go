//go:build windows

package daemon

import (
	"fmt"
	"os/exec"
	"sync"
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"go.uber.org/zap"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	MB_OK              = 0x00000000
	MB_ICONINFORMATION = 0x00000040
)

// TrayApp represents system tray application
type TrayApp struct {
	daemon   *Daemon
	logger   *zap.Logger
	quit     chan struct{}
	stopOnce sync.Once
	ready    func()
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// OnReady registers fn to run in the background once the tray is up
func (t *TrayApp) OnReady(fn func()) {
	t.ready = fn
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	systray.SetIcon(calendarIcon())
	systray.SetTitle("DU")
	systray.SetTooltip(fmt.Sprintf("Dias Úteis - %s", t.daemon.URL()))

	mOpen := systray.AddMenuItem("Open calendar", "Open the calendar in the browser")
	systray.AddSeparator()
	mStatus := systray.AddMenuItem("Status", "Show current status")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	if t.ready != nil {
		go t.ready()
	}

	go func() {
		for {
			select {
			case <-mOpen.ClickedCh:
				t.logger.Info("Open calendar clicked from tray")
				t.openBrowser()
			case <-mStatus.ClickedCh:
				t.logger.Info("Status clicked from tray")
				t.showStatus()
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				// the daemon stops the tray once the server is down
				t.daemon.Stop()
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	t.stopOnce.Do(func() {
		close(t.quit)
	})
}

func (t *TrayApp) openBrowser() {
	url := t.daemon.URL()
	if err := exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start(); err != nil {
		t.logger.Error("Failed to open browser", zap.String("url", url), zap.Error(err))
	}
}

// showStatus shows the server address and the number of live sessions
func (t *TrayApp) showStatus() {
	status := t.daemon.GetStatus()
	t.logger.Info("Current status", zap.Any("status", status))

	message := fmt.Sprintf("URL: %v\nSessions: %v", status["url"], status["sessions"])
	systray.SetTooltip(message)
	showMessageBox("Dias Úteis", message)
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(MB_OK|MB_ICONINFORMATION),
	)
}
