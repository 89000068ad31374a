package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the root coordinate (x, y) lies on the monitor.
func (m Monitor) Contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// GetActiveMonitor returns the monitor under the pointer, falling back to the
// first one. Its geometry is clipped to the EWMH work area when the window
// manager publishes one.
func (c *Connection) GetActiveMonitor() (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	active := findMonitorForPointer(c, monitors)
	if active == nil {
		active = &monitors[0]
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return active, nil
	}
	desktopIndex := 0
	if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(workArea) {
		desktopIndex = int(current)
	}
	wa := workArea[desktopIndex]
	clipToWorkArea(active, int(wa.X), int(wa.Y), int(wa.Width), int(wa.Height))
	return active, nil
}

// clipToWorkArea shrinks m to its intersection with the work area. A work
// area that misses the monitor entirely leaves it untouched.
func clipToWorkArea(m *Monitor, waX, waY, waW, waH int) {
	x1 := max(m.X, waX)
	y1 := max(m.Y, waY)
	x2 := min(m.X+m.Width, waX+waW)
	y2 := min(m.Y+m.Height, waY+waH)

	if x2 > x1 && y2 > y1 {
		m.X = x1
		m.Y = y1
		m.Width = x2 - x1
		m.Height = y2 - y1
	}
}

// Center returns the origin that centers a width x height window on m.
// Windows larger than the monitor are pinned to its top-left corner.
func (m Monitor) Center(width, height int) (x, y int) {
	x = m.X + max(0, (m.Width-width)/2)
	y = m.Y + max(0, (m.Height-height)/2)
	return x, y
}

func findMonitorForPointer(c *Connection, monitors []Monitor) *Monitor {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil
	}

	for i := range monitors {
		if monitors[i].Contains(int(pointer.RootX), int(pointer.RootY)) {
			return &monitors[i]
		}
	}
	return nil
}
