package pubsub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
)

// TopicRetention is how long unacknowledged events are kept.
const TopicRetention = 7 * 24 * time.Hour

// DeadLetterTopicID names the dead letter topic paired with topicID.
func DeadLetterTopicID(topicID string) string {
	return topicID + "-dlq"
}

// SubscriptionID names the default pull subscription of topicID.
func SubscriptionID(topicID string) string {
	return topicID + "-sub"
}

// EnsureTopic creates topicID when missing. An existing topic with a different retention is
// reported, not changed.
func EnsureTopic(ctx context.Context, client *pubsub.Client, logger zerolog.Logger, topicID string, retention time.Duration) (*pubsub.Topic, error) {
	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check topic %s: %w", topicID, err)
	}
	if !exists {
		logger.Info().Str("topic", topicID).Dur("retention", retention).Msg("Creating topic")
		return client.CreateTopicWithConfig(ctx, topicID, &pubsub.TopicConfig{RetentionDuration: retention})
	}

	cfg, err := topic.Config(ctx)
	if err != nil {
		return nil, fmt.Errorf("get config for topic %s: %w", topicID, err)
	}
	if cfg.RetentionDuration != retention {
		logger.Warn().Str("topic", topicID).
			Interface("expected", retention).
			Interface("found", cfg.RetentionDuration).
			Msg("Topic retention mismatch, update it manually")
	}
	return topic, nil
}

// EnsureSubscription creates subID when missing and otherwise brings its ack deadline and
// retry policy in line with want.
func EnsureSubscription(ctx context.Context, client *pubsub.Client, logger zerolog.Logger, subID string, want pubsub.SubscriptionConfig) error {
	sub := client.Subscription(subID)
	exists, err := sub.Exists(ctx)
	if err != nil {
		return fmt.Errorf("check subscription %s: %w", subID, err)
	}
	if !exists {
		logger.Info().Str("subscription", subID).Msg("Creating subscription")
		if _, err := client.CreateSubscription(ctx, subID, want); err != nil {
			return fmt.Errorf("create subscription %s: %w", subID, err)
		}
		return nil
	}

	existing, err := sub.Config(ctx)
	if err != nil {
		return fmt.Errorf("get config for subscription %s: %w", subID, err)
	}
	if existing.AckDeadline == want.AckDeadline && sameRetryPolicy(existing.RetryPolicy, want.RetryPolicy) {
		logger.Info().Str("subscription", subID).Msg("Subscription is up to date")
		return nil
	}

	logger.Info().Str("subscription", subID).Msg("Updating subscription")
	if _, err := sub.Update(ctx, pubsub.SubscriptionConfigToUpdate{
		AckDeadline: want.AckDeadline,
		RetryPolicy: want.RetryPolicy,
	}); err != nil {
		return fmt.Errorf("update subscription %s: %w", subID, err)
	}
	return nil
}

func sameRetryPolicy(a, b *pubsub.RetryPolicy) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.MinimumBackoff == b.MinimumBackoff && a.MaximumBackoff == b.MaximumBackoff
}

// EnsureEventTopic sets up topicID with a dead letter topic and a pull subscription for each.
func EnsureEventTopic(ctx context.Context, client *pubsub.Client, logger zerolog.Logger, topicID string) error {
	dlqTopic, err := EnsureTopic(ctx, client, logger, DeadLetterTopicID(topicID), TopicRetention)
	if err != nil {
		return err
	}
	mainTopic, err := EnsureTopic(ctx, client, logger, topicID, TopicRetention)
	if err != nil {
		return err
	}

	retry := &pubsub.RetryPolicy{MinimumBackoff: 10 * time.Second, MaximumBackoff: 600 * time.Second}
	if err := EnsureSubscription(ctx, client, logger, SubscriptionID(topicID), pubsub.SubscriptionConfig{
		Topic:            mainTopic,
		AckDeadline:      60 * time.Second,
		ExpirationPolicy: 31 * 24 * time.Hour,
		RetryPolicy:      retry,
		DeadLetterPolicy: &pubsub.DeadLetterPolicy{
			DeadLetterTopic:     dlqTopic.String(),
			MaxDeliveryAttempts: 5,
		},
	}); err != nil {
		return err
	}
	return EnsureSubscription(ctx, client, logger, SubscriptionID(DeadLetterTopicID(topicID)), pubsub.SubscriptionConfig{
		Topic:            dlqTopic,
		AckDeadline:      60 * time.Second,
		ExpirationPolicy: 31 * 24 * time.Hour,
		RetryPolicy:      retry,
	})
}

// ResetEmulator deletes every subscription and topic in the project. Only for the local emulator.
func ResetEmulator(ctx context.Context, client *pubsub.Client, logger zerolog.Logger) error {
	subs := client.Subscriptions(ctx)
	for {
		sub, err := subs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("list subscriptions: %w", err)
		}
		logger.Info().Str("subscription", sub.ID()).Msg("Deleting subscription")
		if err := sub.Delete(ctx); err != nil {
			logger.Warn().Err(err).Str("subscription", sub.ID()).Msg("Failed to delete subscription")
		}
	}

	topics := client.Topics(ctx)
	for {
		topic, err := topics.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("list topics: %w", err)
		}
		logger.Info().Str("topic", topic.ID()).Msg("Deleting topic")
		if err := topic.Delete(ctx); err != nil {
			logger.Warn().Err(err).Str("topic", topic.ID()).Msg("Failed to delete topic")
		}
	}
	return nil
}
