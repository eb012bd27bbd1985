// Package gputest provides an in-memory GPU that implements gpu.CommandInterface. Contexts
// created from the same Service share a mailbox table, so resources produced in one context
// can be consumed in another the way two processes sharing a GPU service would.
package gputest

import (
	"sync"

	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/conduit/gpu"
)

// Service owns the mailbox table shared by every Context created from it
type Service struct {
	mutex             sync.Mutex
	mailboxes         *swiss.Map[gpu.Mailbox, *Texture]
	nextCommandBuffer uint64
}

func NewService() *Service {
	return &Service{
		mailboxes: swiss.NewMap[gpu.Mailbox, *Texture](16),
	}
}

// MailboxTexture returns the texture produced into a mailbox
func (s *Service) MailboxTexture(mailbox gpu.Mailbox) (*Texture, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.mailboxes.Get(mailbox)
}

func (s *Service) produce(mailbox gpu.Mailbox, texture *Texture) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.mailboxes.Put(mailbox, texture)
}

func (s *Service) newCommandBuffer() uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.nextCommandBuffer++
	return s.nextCommandBuffer
}

// DefaultCapabilities enables every optional feature
func DefaultCapabilities() gpu.Capabilities {
	return gpu.Capabilities{
		MaxTextureSize:        8192,
		TextureStorage:        true,
		TextureUsageHint:      true,
		TextureFormatBGRA8888: true,
		TextureFormatETC1:     true,
		SyncQuery:             true,
		Image:                 true,
	}
}
