/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package whatsapp

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"

	// Register the pgx database/sql driver used by sqlstore.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Status represents the WhatsApp connection status
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusPairing      Status = "pairing"
)

// Client manages the linked WhatsApp device used to deliver reminders.
type Client struct {
	client      *whatsmeow.Client
	container   *sqlstore.Container
	deviceStore *store.Device
	status      Status
	qrCode      string // Base64 encoded PNG
	mu          sync.RWMutex
}

var (
	instance *Client
	once     sync.Once
)

// GetClient returns the singleton WhatsApp client instance, or nil when
// WhatsApp delivery is disabled.
func GetClient() *Client {
	return instance
}

// Initialize sets up the WhatsApp client with PostgreSQL storage and
// reconnects a previously paired device in the background.
func Initialize(ctx context.Context, databaseURL string) error {
	var initErr error

	once.Do(func() {
		store.SetOSInfo("MediMind", [3]uint32{1, 0, 0})

		container, err := sqlstore.New(ctx, "pgx", databaseURL, newWALogger("store"))
		if err != nil {
			initErr = fmt.Errorf("failed to create sqlstore: %w", err)
			return
		}

		deviceStore, err := container.GetFirstDevice(ctx)
		if err != nil {
			initErr = fmt.Errorf("failed to get device: %w", err)
			return
		}

		instance = &Client{
			container:   container,
			deviceStore: deviceStore,
			status:      StatusDisconnected,
		}

		if deviceStore.ID != nil {
			go func() {
				if err := instance.Reconnect(context.Background()); err != nil {
					logger.Warn("WhatsApp reconnect failed", "error", err)
				}
			}()
		}
	})

	return initErr
}

// GetStatus returns the current connection status
func (c *Client) GetStatus() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status
}

// GetQRCode returns the current QR code as a base64 PNG string
func (c *Client) GetQRCode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.qrCode
}

func (c *Client) setStatus(status Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
}

func (c *Client) setQRCode(qrCode string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.qrCode = qrCode
}

func (c *Client) newClient() *whatsmeow.Client {
	cli := whatsmeow.NewClient(c.deviceStore, newWALogger("client"))
	cli.AddEventHandler(c.handleEvent)
	cli.EnableAutoReconnect = true
	cli.AutoTrustIdentity = true

	c.mu.Lock()
	c.client = cli
	c.mu.Unlock()

	return cli
}

// Connect connects a paired device, or starts pairing and publishes QR
// codes through GetQRCode until the phone scans one.
func (c *Client) Connect(ctx context.Context) error {
	c.setStatus(StatusConnecting)

	cli := c.newClient()

	if cli.Store.ID != nil {
		if err := cli.Connect(); err != nil {
			c.setStatus(StatusDisconnected)
			return fmt.Errorf("failed to connect: %w", err)
		}

		c.setStatus(StatusConnected)

		return nil
	}

	// The QR channel must exist before connecting.
	c.setStatus(StatusPairing)

	qrChan, err := cli.GetQRChannel(ctx)
	if err != nil {
		c.setStatus(StatusDisconnected)
		return fmt.Errorf("failed to get QR channel: %w", err)
	}

	if err := cli.Connect(); err != nil {
		c.setStatus(StatusDisconnected)
		return fmt.Errorf("failed to connect: %w", err)
	}

	go c.watchPairing(qrChan)

	return nil
}

func (c *Client) watchPairing(qrChan <-chan whatsmeow.QRChannelItem) {
	for evt := range qrChan {
		logger.Debug("WhatsApp QR event", "event", evt.Event)

		switch evt.Event {
		case "code":
			png, err := qrcode.Encode(evt.Code, qrcode.Medium, 256)
			if err != nil {
				logger.Error("Failed to generate QR code", "error", err)
				continue
			}

			c.setQRCode(base64.StdEncoding.EncodeToString(png))
		case "success":
			c.setQRCode("")
			c.setStatus(StatusConnected)
			logger.Info("WhatsApp pairing successful")
		case "timeout":
			c.setQRCode("")
			c.setStatus(StatusDisconnected)
			logger.Warn("WhatsApp QR code timed out")
		case "error":
			c.setQRCode("")
			c.setStatus(StatusDisconnected)
			logger.Error("WhatsApp pairing failed", "error", evt.Error)
		}
	}
}

// Reconnect attempts to reconnect with existing credentials
func (c *Client) Reconnect(_ context.Context) error {
	if c.deviceStore == nil || c.deviceStore.ID == nil {
		return errNoExistingSessionToReconnect
	}

	c.setStatus(StatusConnecting)

	if err := c.newClient().Connect(); err != nil {
		c.setStatus(StatusDisconnected)
		return fmt.Errorf("failed to reconnect: %w", err)
	}

	c.setStatus(StatusConnected)
	logger.Info("WhatsApp reconnected")

	return nil
}

// Disconnect cleanly disconnects the WhatsApp client
func (c *Client) Disconnect() {
	c.mu.RLock()
	cli := c.client
	c.mu.RUnlock()

	if cli != nil {
		cli.Disconnect()
	}

	c.setStatus(StatusDisconnected)
	c.setQRCode("")
}

// Logout unlinks the device and prepares a fresh one for pairing.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.RLock()
	cli := c.client
	c.mu.RUnlock()

	if cli == nil {
		return nil
	}

	if err := cli.Logout(ctx); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}

	c.setStatus(StatusDisconnected)
	c.setQRCode("")

	if c.container == nil {
		return errNoDeviceStoreContainer
	}

	deviceStore, err := c.container.GetFirstDevice(ctx)
	if err != nil {
		return fmt.Errorf("failed to get new device: %w", err)
	}

	c.mu.Lock()
	c.deviceStore = deviceStore
	c.mu.Unlock()

	return nil
}

func (c *Client) handleEvent(evt interface{}) {
	switch evt.(type) {
	case *events.Connected:
		c.setStatus(StatusConnected)
		logger.Info("WhatsApp connected")
	case *events.Disconnected:
		c.setStatus(StatusDisconnected)
		logger.Info("WhatsApp disconnected")
	case *events.LoggedOut:
		c.setStatus(StatusDisconnected)
		logger.Warn("WhatsApp logged out")
	}
}

// LinkedPhone returns the number of the paired device, if any.
func (c *Client) LinkedPhone() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.deviceStore == nil || c.deviceStore.ID == nil {
		return ""
	}

	return JIDToPhone(c.deviceStore.ID.String())
}

// IsConnected returns true if WhatsApp is connected
func (c *Client) IsConnected() bool {
	return c.GetStatus() == StatusConnected
}

// SendText sends a plain text message to a phone number in any common
// format. The number must include its country code.
func (c *Client) SendText(ctx context.Context, phone, text string) error {
	jid, err := PhoneToJID(phone)
	if err != nil {
		return err
	}

	c.mu.RLock()
	cli := c.client
	connected := c.status == StatusConnected
	c.mu.RUnlock()

	if cli == nil || !connected {
		return ErrNotConnected
	}

	resp, err := cli.SendMessage(ctx, jid, &waE2E.Message{Conversation: proto.String(text)})
	if err != nil {
		return fmt.Errorf("failed to send WhatsApp message: %w", err)
	}

	logger.Debug("Sent WhatsApp message", "to", jid.User, "id", resp.ID)

	return nil
}

// PhoneToJID converts a phone number to a WhatsApp user JID.
func PhoneToJID(phone string) (types.JID, error) {
	digits := NormalizePhone(phone)
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return types.EmptyJID, fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}

	return types.NewJID(digits, types.DefaultUserServer), nil
}
