package restapi

import (
	"context"
	"net/http"
	"strconv"

	"mesa-console/internal/core/domain"
)

const notificationsResource = "notifications"

// NotificationClient implements port.NotificationAPI.
type NotificationClient struct{ c *Client }

func NewNotificationClient(c *Client) *NotificationClient { return &NotificationClient{c: c} }

func (n *NotificationClient) GetByUser(ctx context.Context, userID int64) []domain.Notification {
	return listOf(ctx, n.c, notificationsResource, "GetByUser", func() ([]domain.Notification, error) {
		var ds []notificationDTO
		r := request{method: http.MethodGet, resource: notificationsResource, path: []string{"user", strconv.FormatInt(userID, 10)}}
		if err := n.c.do(ctx, r, &ds); err != nil {
			return nil, err
		}
		return mapAll(ds, toNotification), nil
	})
}

func (n *NotificationClient) MarkRead(ctx context.Context, id int64) error {
	r := request{method: http.MethodPatch, resource: notificationsResource, path: []string{strconv.FormatInt(id, 10), "read"}}
	return n.c.resolve(ctx, Propagate, notificationsResource, "MarkRead", n.c.do(ctx, r, nil))
}
