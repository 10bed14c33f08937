// Package p2pnet implements the node's Network adapter over libp2p: pubsub
// topics for broadcast/multicast gossip, and protocol-ID request/response
// streams for unicast RPC (pull_block, pull_txs, pull_proof).
package p2pnet

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/libp2p/go-libp2p"
	"github.com/libp2p/go-libp2p-core/crypto"
	"github.com/libp2p/go-libp2p-core/host"
	"github.com/libp2p/go-libp2p-core/network"
	"github.com/libp2p/go-libp2p-core/peer"
	"github.com/libp2p/go-libp2p-core/protocol"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/empower1/corechain/internal/consensus"
)

const maxFrameSize = 16 << 20 // 16MiB, generous upper bound for a pulled block/batch

// Host is the libp2p-backed Network, consumed by consensus.Adapter.
type Host struct {
	host host.Host
	ps   *pubsub.PubSub

	mu     sync.Mutex
	topics map[string]*pubsub.Topic

	handlers map[string]func(ctx context.Context, req []byte) ([]byte, error)
}

// New starts a libp2p host listening on listenAddrs and wires a gossipsub
// router over it, grounded loosely on the teacher's
// internal/p2p/server.go handshake->framed-message idiom, ported from
// hand-rolled TCP framing to libp2p streams/topics.
func New(ctx context.Context, listenAddrs []string) (*Host, error) {
	addrs := make([]ma.Multiaddr, 0, len(listenAddrs))
	for _, a := range listenAddrs {
		addr, err := ma.NewMultiaddr(a)
		if err != nil {
			return nil, fmt.Errorf("p2pnet: parse listen addr %q: %w", a, err)
		}
		addrs = append(addrs, addr)
	}

	h, err := libp2p.New(libp2p.ListenAddrs(addrs...))
	if err != nil {
		return nil, fmt.Errorf("p2pnet: create libp2p host: %w", err)
	}

	ps, err := pubsub.NewGossipSub(ctx, h)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("p2pnet: create gossipsub router: %w", err)
	}

	return &Host{
		host:     h,
		ps:       ps,
		topics:   make(map[string]*pubsub.Topic),
		handlers: make(map[string]func(ctx context.Context, req []byte) ([]byte, error)),
	}, nil
}

func (h *Host) Close() error {
	return h.host.Close()
}

func (h *Host) topic(name string) (*pubsub.Topic, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.topics[name]; ok {
		return t, nil
	}
	t, err := h.ps.Join(name)
	if err != nil {
		return nil, fmt.Errorf("p2pnet: join topic %q: %w", name, err)
	}
	h.topics[name] = t
	return t, nil
}

// Broadcast gossips msg over the pubsub topic named endpoint
// (broadcast_height, new_txs).
func (h *Host) Broadcast(ctx context.Context, endpoint string, msg []byte) error {
	t, err := h.topic(endpoint)
	if err != nil {
		return err
	}
	return t.Publish(ctx, msg)
}

// Multicast publishes msg unchanged to the shared topic, exactly as
// Broadcast does: gossipsub has no native multicast primitive, targets is
// not used, and every subscriber receives the message. Direct-stream
// unicast is available via Call for cases that need a guaranteed 1:1 send.
func (h *Host) Multicast(ctx context.Context, endpoint string, msg []byte, targets [][]byte) error {
	return h.Broadcast(ctx, endpoint, msg)
}

// Call opens a request/response stream to target (a marshaled libp2p public
// key) over the protocol ID endpoint, writes a length-prefixed req, and
// reads a length-prefixed response.
func (h *Host) Call(ctx context.Context, endpoint string, target []byte, req []byte, priority consensus.Priority) ([]byte, error) {
	pid, err := peerIDFromPublicKeyBytes(target)
	if err != nil {
		return nil, err
	}

	s, err := h.host.NewStream(ctx, pid, protocol.ID(endpoint))
	if err != nil {
		return nil, fmt.Errorf("p2pnet: open stream to %s on %s: %w", pid, endpoint, err)
	}
	defer s.Close()

	if err := writeFrame(s, req); err != nil {
		return nil, fmt.Errorf("p2pnet: write request: %w", err)
	}
	resp, err := readFrame(s)
	if err != nil {
		return nil, fmt.Errorf("p2pnet: read response: %w", err)
	}
	return resp, nil
}

// Handle registers fn to answer incoming streams for protocol ID endpoint,
// the server side of Call.
func (h *Host) Handle(endpoint string, fn func(ctx context.Context, req []byte) ([]byte, error)) {
	h.mu.Lock()
	h.handlers[endpoint] = fn
	h.mu.Unlock()

	h.host.SetStreamHandler(protocol.ID(endpoint), func(s network.Stream) {
		defer s.Close()
		req, err := readFrame(s)
		if err != nil {
			return
		}
		resp, err := fn(context.Background(), req)
		if err != nil {
			return
		}
		_ = writeFrame(s, resp)
	})
}

func peerIDFromPublicKeyBytes(raw []byte) (peer.ID, error) {
	pubKey, err := crypto.UnmarshalPublicKey(raw)
	if err != nil {
		return "", fmt.Errorf("p2pnet: unmarshal peer public key: %w", err)
	}
	pid, err := peer.IDFromPublicKey(pubKey)
	if err != nil {
		return "", fmt.Errorf("p2pnet: derive peer id: %w", err)
	}
	return pid, nil
}

func writeFrame(w io.Writer, data []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func readFrame(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	var lenBuf [4]byte
	if _, err := io.ReadFull(br, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > maxFrameSize {
		return nil, fmt.Errorf("p2pnet: frame of %d bytes exceeds max %d", n, maxFrameSize)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
