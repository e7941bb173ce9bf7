// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package gossip

import "sync"

// subscriber delivers the messages of a topic in order, without ever
// blocking the publisher. Messages queue up until they are read.
type subscriber struct {
	out    chan []byte
	signal chan struct{}
	done   chan struct{}

	mutex  sync.Mutex
	queue  [][]byte
	closed bool
}

func newSubscriber(replay [][]byte) *subscriber {
	s := &subscriber{
		out:    make(chan []byte),
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
		queue:  append([][]byte(nil), replay...),
	}
	go s.pump()
	return s
}

func (s *subscriber) push(message []byte) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return
	}
	s.queue = append(s.queue, message)

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

// close ends the stream. Queued messages not yet read are discarded.
func (s *subscriber) close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.queue = nil
	close(s.done)
}

func (s *subscriber) pump() {
	defer close(s.out)

	for {
		s.mutex.Lock()
		if len(s.queue) == 0 {
			s.mutex.Unlock()
			select {
			case <-s.signal:
				continue
			case <-s.done:
				return
			}
		}
		message := s.queue[0]
		s.queue = s.queue[1:]
		s.mutex.Unlock()

		select {
		case s.out <- message:
		case <-s.done:
			return
		}
	}
}
