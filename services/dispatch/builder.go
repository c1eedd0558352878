package dispatch

import (
	"strings"

	"courier/models"
	"courier/services/selection"
)

// BuildRequest converts the recipient set and its selection state into an
// immutable dispatch request. Recipients with no selected channels are
// dropped entirely; a target with zero channels would have no way to report
// success or failure and would corrupt the outcome accounting. Channel
// priority is the 1-based rank within each recipient's selection order.
//
// The builder is pure: it talks to no directory or transport, and it fails
// rather than returning a partial request.
func BuildRequest(recipients []models.User, state selection.State, templateID, content string, opts models.SendOptions) (*models.DispatchRequest, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}

	var targets []models.DeliveryTarget
	for _, r := range recipients {
		contacts := state.SelectedChannels(r)
		if len(contacts) == 0 {
			continue
		}
		channels := make([]models.DeliveryChannel, 0, len(contacts))
		for i, c := range contacts {
			channels = append(channels, models.DeliveryChannel{
				ContactID: c.ID,
				Type:      c.Type,
				Address:   c.Address,
				Verified:  c.Verified,
				Priority:  i + 1,
			})
		}
		targets = append(targets, models.DeliveryTarget{
			UserID:   r.ID,
			Name:     r.DisplayName(),
			Channels: channels,
		})
	}

	if len(targets) == 0 {
		return nil, ErrNoEligibleTargets
	}

	return &models.DispatchRequest{
		NotificationID: templateID,
		MessageContent: content,
		Recipients:     targets,
		Options:        opts,
	}, nil
}
