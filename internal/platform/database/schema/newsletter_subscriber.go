package schema

// NewsletterSubscriberTable represents the 'newsletter.subscriber' table
type NewsletterSubscriberTable struct {
	Table            string
	ID               string
	Email            string
	UnsubscribeToken string
	SubscribedAt     string
	UnsubscribedAt   string
}

// NewsletterSubscriber is the schema definition for newsletter.subscriber
var NewsletterSubscriber = NewsletterSubscriberTable{
	Table:            "newsletter.subscriber",
	ID:               "id",
	Email:            "email",
	UnsubscribeToken: "unsubscribetoken",
	SubscribedAt:     "subscribedat",
	UnsubscribedAt:   "unsubscribedat",
}
