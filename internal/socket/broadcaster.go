package socket

// Broadcaster publishes group events. A nil Broadcaster drops everything,
// so services can run without a hub.
type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

func (b *Broadcaster) send(groupID string, msgType MessageType, payload interface{}) {
	if b == nil || b.hub == nil {
		return
	}
	b.hub.SendToGroup(groupID, msgType, payload)
}

func (b *Broadcaster) BroadcastMemberJoined(groupID string, member interface{}) {
	b.send(groupID, MessageMemberJoined, member)
}

func (b *Broadcaster) BroadcastPlanGenerated(groupID string, plan interface{}) {
	b.send(groupID, MessagePlanGenerated, plan)
}

func (b *Broadcaster) BroadcastPlanLocked(groupID string, plan interface{}) {
	b.send(groupID, MessagePlanLocked, plan)
}

func (b *Broadcaster) BroadcastHeadcountSubmitted(groupID, date, userID string, lunch, dinner bool) {
	b.send(groupID, MessageHeadcountSubmitted, map[string]interface{}{
		"date":   date,
		"userId": userID,
		"lunch":  lunch,
		"dinner": dinner,
	})
}

func (b *Broadcaster) BroadcastCookNotified(groupID, date, message string) {
	b.send(groupID, MessageCookNotified, map[string]interface{}{
		"date":    date,
		"message": message,
	})
}
