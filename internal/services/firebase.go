package services

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	// FirebaseApp is the Firebase app instance
	FirebaseApp *firebase.App
	// AuthClient verifies identity tokens issued by Firebase Authentication
	AuthClient *auth.Client
	// MessagingClient is the Firebase Cloud Messaging client
	MessagingClient *messaging.Client
)

// InitFirebase initializes Firebase Admin SDK
func InitFirebase() error {
	ctx := context.Background()

	// Check if Firebase is configured
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath == "" {
		log.Println("Warning: FIREBASE_SERVICE_ACCOUNT_PATH not set. Falling back to JWT_SECRET token verification; push notifications disabled.")
		return nil
	}

	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing firebase app: %v", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("error getting auth client: %v", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting messaging client: %v", err)
	}

	FirebaseApp = app
	AuthClient = authClient
	MessagingClient = messagingClient

	log.Println("Firebase Admin SDK initialized successfully")
	return nil
}

// NotificationPayload represents the notification data
type NotificationPayload struct {
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// SendNotificationToToken sends a notification to a specific FCM token
func SendNotificationToToken(ctx context.Context, token string, payload NotificationPayload) error {
	if MessagingClient == nil {
		log.Println("Warning: Firebase not initialized. Skipping notification.")
		return nil
	}

	// FCM data values must be strings
	dataStrings := make(map[string]string)
	for key, value := range payload.Data {
		dataStrings[key] = fmt.Sprintf("%v", value)
	}

	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data:  dataStrings,
		Token: token,
	}

	response, err := MessagingClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending message: %v", err)
	}

	log.Printf("Successfully sent notification, response: %s", response)
	return nil
}

// SendRiderApprovedNotification tells an applicant their rider application
// went through.
func SendRiderApprovedNotification(ctx context.Context, token string, riderID uint, name string) error {
	payload := NotificationPayload{
		Title: "Rider Application Approved",
		Body:  fmt.Sprintf("Congratulations %s, you can now pick up deliveries!", name),
		Data: map[string]interface{}{
			"type":    "rider_approved",
			"riderId": riderID,
		},
	}

	return SendNotificationToToken(ctx, token, payload)
}
