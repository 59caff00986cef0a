package subscription

import "time"

// Topic - вид сущности, по которому подписываются на изменения
type Topic string

const (
	TopicUser    Topic = "user"
	TopicPost    Topic = "post"
	TopicComment Topic = "comment"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpLike   Op = "like"
	OpUnlike Op = "unlike"
)

// Event публикуется после того, как изменение зафиксировано в хранилище
type Event struct {
	Op     Op
	Entity Topic
	ID     string
	// Related - затронутые попутно документы (удаленные посты пользователя, лайкнувший пользователь)
	Related []string
	At      time.Time
}
