package subscription

type Manager interface {
	Subscribe(topic Topic) (<-chan Event, func())
	Publish(topic Topic, event Event)
}
