package telegram

import "sync"

// chatPrefs are per-chat choices made with /type and /engine.
type chatPrefs struct {
	TextType string
	Engine   string
}

type prefStore struct {
	m sync.Map // chatID -> chatPrefs
}

func (p *prefStore) get(chatID int64) chatPrefs {
	if v, ok := p.m.Load(chatID); ok {
		return v.(chatPrefs)
	}
	return chatPrefs{}
}

func (p *prefStore) update(chatID int64, fn func(*chatPrefs)) chatPrefs {
	cp := p.get(chatID)
	fn(&cp)
	p.m.Store(chatID, cp)
	return cp
}
