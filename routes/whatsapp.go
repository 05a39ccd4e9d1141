/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/medimind/db"
	"github.com/humaidq/medimind/whatsapp"
)

// WhatsAppPairing renders the phone number form and, for admins, the
// pairing status of the sender device.
func WhatsAppPairing(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	ctx := c.Request().Context()

	isAdmin, err := resolveSessionIsAdmin(ctx, s)
	if err != nil {
		logger.Error("Failed to resolve user admin state", "error", err)
	}

	data["CanManageDevice"] = isAdmin

	if isAdmin {
		setWhatsAppDeviceData(data)
	}

	if user, err := resolveSessionUser(ctx, s); err == nil && user.Phone != nil {
		data["Phone"] = *user.Phone
	}

	data["IsWhatsApp"] = true
	data["Breadcrumbs"] = []BreadcrumbItem{
		{Name: "WhatsApp", URL: "", IsCurrent: true},
	}

	t.HTML(http.StatusOK, "whatsapp_pairing")
}

func setWhatsAppDeviceData(data template.Data) {
	client := whatsapp.GetClient()
	if client == nil {
		data["Status"] = "unavailable"
		data["QRCode"] = ""
		data["IsConnected"] = false

		return
	}

	data["Status"] = string(client.GetStatus())
	data["QRCode"] = client.GetQRCode()
	data["IsConnected"] = client.IsConnected()
	if qr := client.GetQRCode(); qr != "" {
		image := "data:image/png;base64," + qr
		data["QRImage"] = &image
	}
	data["LinkedPhone"] = client.LinkedPhone()
	data["Available"] = true
}

// WhatsAppConnect initiates the WhatsApp connection
func WhatsAppConnect(c flamego.Context, s session.Session) {
	client := whatsapp.GetClient()

	if client == nil {
		SetErrorFlash(s, "WhatsApp is not available")
		c.Redirect("/whatsapp", http.StatusSeeOther)

		return
	}

	// The connection outlives the request.
	go func() {
		if err := client.Connect(context.Background()); err != nil {
			logger.Error("WhatsApp connect failed", "error", err)
		}
	}()

	c.Redirect("/whatsapp", http.StatusSeeOther)
}

// WhatsAppDisconnect unlinks the WhatsApp device
func WhatsAppDisconnect(c flamego.Context, s session.Session) {
	client := whatsapp.GetClient()

	if client == nil {
		SetErrorFlash(s, "WhatsApp is not available")
		c.Redirect("/whatsapp", http.StatusSeeOther)

		return
	}

	if err := client.Logout(c.Request().Context()); err != nil {
		logger.Error("WhatsApp logout failed", "error", err)
		SetErrorFlash(s, "Failed to disconnect WhatsApp")
	} else {
		SetSuccessFlash(s, "WhatsApp disconnected")
	}

	c.Redirect("/whatsapp", http.StatusSeeOther)
}

// UpdatePhone sets the number reminders are sent to over WhatsApp. An
// empty number turns WhatsApp reminders off.
func UpdatePhone(c flamego.Context, s session.Session) {
	userID, _ := getSessionUserID(s)
	phone := strings.TrimSpace(c.Request().FormValue("phone"))

	if phone != "" && !whatsapp.ValidPhone(phone) {
		SetErrorFlash(s, "Phone number must include the country code")
		c.Redirect("/whatsapp", http.StatusSeeOther)

		return
	}

	if err := db.UpdateUserPhone(c.Request().Context(), userID, phone); err != nil {
		logger.Error("Error updating phone", "user_id", userID, "error", err)
		SetErrorFlash(s, "Failed to update phone number")
		c.Redirect("/whatsapp", http.StatusSeeOther)

		return
	}

	if phone == "" {
		SetSuccessFlash(s, "WhatsApp reminders turned off")
	} else {
		SetSuccessFlash(s, "Phone number updated")
	}

	c.Redirect("/whatsapp", http.StatusSeeOther)
}

// WhatsAppStatusAPI returns the current WhatsApp status as JSON
func WhatsAppStatusAPI(c flamego.Context) {
	client := whatsapp.GetClient()

	response := map[string]interface{}{
		"status":    "unavailable",
		"qrCode":    "",
		"connected": false,
	}

	if client != nil {
		response["status"] = string(client.GetStatus())
		response["qrCode"] = client.GetQRCode()
		response["connected"] = client.IsConnected()
	}

	c.ResponseWriter().Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(c.ResponseWriter()).Encode(response); err != nil {
		logger.Error("Error encoding WhatsApp status", "error", err)
	}
}
