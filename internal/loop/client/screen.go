package client

import (
	"fmt"
	"time"

	"github.com/tomz197/marbles/internal/draw"
	"github.com/tomz197/marbles/internal/loop/config"
	"github.com/tomz197/marbles/internal/loop/server"
	"github.com/tomz197/marbles/internal/object"
)

// drawFrame draws the current frame. The terminal is cleared every frame
// since Canvas.Render only emits set cells.
func (c *Client) drawFrame() error {
	cw := c.chunkWriter
	cw.Clear()
	c.canvas.Clear()

	snapshot := c.server.GetSnapshot()
	if snapshot == nil {
		return cw.Flush()
	}

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: cw,
		World:  snapshot.Box,
	}

	for i := range snapshot.Walls {
		if err := snapshot.Walls[i].Draw(ctx); err != nil {
			return err
		}
	}
	for i := range snapshot.Marbles {
		if err := snapshot.Marbles[i].Draw(ctx); err != nil {
			return err
		}
	}

	c.canvas.Render(cw)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(cw)

	c.drawUI(snapshot)

	return cw.Flush()
}

// drawUI draws the text overlay for the current view.
func (c *Client) drawUI(snapshot *server.WorldSnapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.View == ViewShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.View {
	case ViewWatching:
		c.drawHUD(termWidth, termHeight, snapshot)
	case ViewStart:
		c.drawStartScreen(centerX, centerY)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  __  __   _   ___ ___ _    ___ ___  `,
		` |  \/  | /_\ | _ \ _ ) |  | __/ __| `,
		` | |\/| |/ _ \|   / _ \ |__| _|\__ \ `,
		` |_|  |_/_/ \_\_|_\___/____|___|___/ `,
		`                                     `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	cw := c.chunkWriter
	titleStartY := centerY - 7
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, draw.ColorBrightCyan+line+draw.ColorReset)
	}

	subtitle := "~ A shared box of marbles ~"
	cw.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, draw.ColorDim+subtitle+draw.ColorReset)

	controlsY := titleStartY + len(titleArt) + 3
	controlHeader := "Controls"
	cw.WriteAt(centerX-len(controlHeader)/2, controlsY, controlHeader)

	controlLines := []string{
		"A D / < > . . . . Tilt",
		"W / Up  . . . Lift off",
		"S / Down  . . . Settle",
		"SPACE  . .  Drop marble",
		"R  . . . . . . .  Reset",
		"P  . . . . . . .  Pause",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(line)/2, controlsY+1+i, line)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Watch  <<"
		cw.WriteAt(centerX-len(prompt)/2, controlsY+len(controlLines)+2, prompt)
	}
}

// drawHUD draws the live statistics around the edges of the view.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(termWidth, termHeight int, snapshot *server.WorldSnapshot) {
	cw := c.chunkWriter

	stats := fmt.Sprintf("Tick: %-8d Marbles: %-4d", snapshot.Tick, len(snapshot.Marbles))
	cw.WriteAt(2, 1, stats)

	contacts := fmt.Sprintf("Contacts: %3d wm %3d mm", snapshot.WallContacts, snapshot.MarbleContacts)
	cw.WriteAt(termWidth-len(contacts)-1, 1, contacts)

	gravity := fmt.Sprintf("Gravity: %+.3f %+.3f", snapshot.Gravity[0], snapshot.Gravity[1])
	cw.WriteAt(2, termHeight, gravity)

	if snapshot.Paused {
		label := "PAUSED"
		col, row := c.canvas.LogicalToTerminal(c.canvas.LogicalWidth()/2, c.canvas.LogicalHeight()/2)
		cw.WriteAt(col-len(label)/2, row, draw.ColorYellow+label+draw.ColorReset)
	}

	viewers := fmt.Sprintf("Viewers: %-4d", snapshot.Viewers)
	cw.WriteAt(termWidth-len(viewers)-1, termHeight, viewers)

	if c.state.resetNotice > 0 {
		banner := "WORLD RESET"
		cw.WriteAt(termWidth/2-len(banner)/2, 2, draw.ColorYellow+banner+draw.ColorReset)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}
