package activity

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"checkinhub/internal/configs"
	"checkinhub/internal/pkg/logx"
	"checkinhub/internal/pkg/randx"
)

const (
	lifecycleQueueSize = 64
	eventQueueSize     = 1024
)

// checkinSuccessMessage is the human-readable acknowledgment sent back to a
// handset after a successful check-in.
const checkinSuccessMessage = "Check-in successful! Your horse is now galloping on the big screen!"

// inboundEvent is one client event queued for the dispatch loop.
type inboundEvent struct {
	connectionID string
	event        string
	payload      json.RawMessage
}

// Coordinator owns the activity state (registry, allocator, ledger,
// directory, published stats) and orchestrates the check-in transaction
// end to end.
//
// All mutations run on a single dispatch goroutine: each inbound event and
// each stats tick runs to completion before the next is processed, so no two
// check-in transactions ever interleave and the budget counter needs no
// finer-grained coordination. The mutex only shields the HTTP read-side
// snapshots from in-flight mutation.
type Coordinator struct {
	registry  *RoomRegistry
	allocator *RewardAllocator
	ledger    *CheckinLedger
	directory *UserDirectory
	broker    *EventBroker

	// stats is the published snapshot, replaced after every mutation.
	stats ActivityStats

	statsInterval   time.Duration
	defaultLocation string

	register   chan *connection
	unregister chan *connection
	events     chan inboundEvent
	stop       chan struct{}
	wg         sync.WaitGroup

	// mu guards the components above: the dispatch loop takes the write
	// lock, HTTP snapshot readers the read lock.
	mu sync.RWMutex

	now    func() time.Time
	logger zerolog.Logger
}

// NewCoordinator wires the activity components from the loaded configuration.
// Call Start to launch the dispatch loop.
func NewCoordinator(cfg *configs.AppConfig) *Coordinator {
	logger := logx.Logger().With().Str("component", "coordinator").Logger()

	registry := NewRoomRegistry()

	c := &Coordinator{
		registry:        registry,
		allocator:       NewRewardAllocator(cfg.RedpackAmounts, cfg.RedpackBudget),
		ledger:          NewCheckinLedger(cfg.Location),
		directory:       NewUserDirectory(),
		broker:          NewEventBroker(registry, logger),
		statsInterval:   cfg.StatsInterval,
		defaultLocation: cfg.DefaultLocation,
		register:        make(chan *connection, lifecycleQueueSize),
		unregister:      make(chan *connection, lifecycleQueueSize),
		events:          make(chan inboundEvent, eventQueueSize),
		stop:            make(chan struct{}),
		now:             time.Now,
		logger:          logger,
	}

	c.stats = RecomputeStats(c.directory, c.ledger)

	return c
}

// Start launches the dispatch loop.
func (c *Coordinator) Start() {
	c.wg.Add(1)
	go c.run()
}

// Shutdown stops the dispatch loop and closes every connection's send queue
// so the transport write pumps terminate.
func (c *Coordinator) Shutdown() {
	close(c.stop)
	c.wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, conn := range c.registry.All() {
		closeSendOnce(conn)
		c.registry.Remove(conn.id)
	}

	c.logger.Info().Msg("Coordinator shutdown complete.")
}

// run is the single dispatch loop. The periodic stats broadcast shares the
// loop with client events, so it too never interleaves with a check-in.
func (c *Coordinator) run() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.statsInterval)
	defer ticker.Stop()

	c.logger.Info().Dur("stats_interval", c.statsInterval).Msg("Dispatch loop started.")

	for {
		select {
		case conn := <-c.register:
			c.handleRegister(conn)

		case conn := <-c.unregister:
			c.handleDisconnect(conn)

		case ev := <-c.events:
			c.dispatch(ev)

		case <-ticker.C:
			c.handleStatsTick()

		case <-c.stop:
			c.logger.Info().Msg("Dispatch loop stopping.")
			return
		}
	}
}

// Connect allocates a connection identity and queues it for registration.
// The transport layer calls this once per accepted WebSocket.
func (c *Coordinator) Connect() *connection {
	conn := newConnection(randx.ConnectionID())

	select {
	case c.register <- conn:
	case <-c.stop:
		closeSendOnce(conn)
	}

	return conn
}

// Disconnect queues best-effort cleanup for a closed connection. There is no
// transactional guarantee relative to events still queued from the same
// connection.
func (c *Coordinator) Disconnect(conn *connection) {
	select {
	case c.unregister <- conn:
	case <-c.stop:
	}
}

// Dispatch queues one named client event for processing. A full queue drops
// the event; the transport retains no delivery guarantee either way.
func (c *Coordinator) Dispatch(connectionID, event string, payload json.RawMessage) {
	select {
	case c.events <- inboundEvent{connectionID: connectionID, event: event, payload: payload}:
	default:
		c.logger.Warn().
			Str("connection_id", connectionID).
			Str("event", event).
			Msg("Event queue full, dropping inbound event.")
	}
}

func (c *Coordinator) handleRegister(conn *connection) {
	c.mu.Lock()
	c.registry.Add(conn)
	c.mu.Unlock()

	c.logger.Info().Str("connection_id", conn.id).Msg("Connection registered.")
}

func (c *Coordinator) handleDisconnect(conn *connection) {
	c.mu.Lock()
	room, roomed := c.registry.Remove(conn.id)
	counts := c.registry.Counts()
	c.mu.Unlock()

	closeSendOnce(conn)

	c.logger.Info().Str("connection_id", conn.id).Msg("Connection removed.")

	if roomed {
		c.broker.ToRoom(RoomAdmin, EventConnectionUpdate, ConnectionUpdate{
			Room:         room,
			Action:       "leave",
			ConnectionID: conn.id,
			Connections:  counts,
		})
	}
}

func (c *Coordinator) dispatch(ev inboundEvent) {
	conn, ok := c.registry.Get(ev.connectionID)
	if !ok {
		// Raced with disconnect; the event is simply dropped.
		return
	}

	switch ev.event {
	case EventJoinRoom:
		c.handleJoinRoom(conn, ev.payload)

	case EventUserCheckin:
		c.handleCheckin(conn, ev.payload)

	case EventRequestStats:
		c.broker.ToConn(conn.id, EventStatsUpdate, c.Stats())

	case EventAdminAction:
		c.handleAdminAction(ev.payload)

	case EventConfigUpdate:
		c.handleConfigUpdate(ev.payload)

	default:
		c.logger.Debug().
			Str("connection_id", conn.id).
			Str("event", ev.event).
			Msg("Ignoring unsupported event.")
	}
}

func (c *Coordinator) handleJoinRoom(conn *connection, payload json.RawMessage) {
	var roomName string
	if err := json.Unmarshal(payload, &roomName); err != nil {
		c.logger.Warn().Err(err).Str("connection_id", conn.id).Msg("Invalid join-room payload.")
		return
	}

	room, ok := ParseRoom(roomName)
	if !ok {
		c.logger.Debug().
			Str("connection_id", conn.id).
			Str("room", roomName).
			Msg("Ignoring join for unknown room.")
		return
	}

	c.mu.Lock()
	joined := c.registry.Join(conn.id, room)
	counts := c.registry.Counts()
	stats := c.stats
	c.mu.Unlock()

	if !joined {
		return
	}

	c.logger.Info().Str("connection_id", conn.id).Str("room", string(room)).Msg("Connection joined room.")

	c.broker.ToConn(conn.id, EventStatsUpdate, stats)
	c.broker.ToRoom(RoomAdmin, EventConnectionUpdate, ConnectionUpdate{
		Room:         room,
		Action:       "join",
		ConnectionID: conn.id,
		Connections:  counts,
	})
}

// handleCheckin runs the check-in transaction: draw, record, upsert,
// recompute, then fan out. There is no rollback; once drawn, the reward is
// counted against the budget even if no recipient ever sees the fan-out.
func (c *Coordinator) handleCheckin(conn *connection, payload json.RawMessage) {
	var req CheckinRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		c.logger.Warn().Err(err).Str("connection_id", conn.id).Msg("Invalid user-checkin payload.")
		return
	}

	c.mu.Lock()

	amount := c.allocator.Draw()

	timestamp := req.Timestamp
	if timestamp == 0 {
		timestamp = c.now().UnixMilli()
	}

	location := req.Location
	if location == "" {
		location = c.defaultLocation
	}

	record := CheckinRecord{
		ID:            randx.CheckinID(),
		UserID:        req.UserID,
		UserName:      req.UserName,
		Timestamp:     timestamp,
		Location:      location,
		RedpackAmount: amount,
		Status:        CheckinStatusSuccess,
	}

	c.ledger.Append(record)
	c.directory.Upsert(req.UserID, req.UserName, timestamp, amount)
	c.stats = RecomputeStats(c.directory, c.ledger)
	stats := c.stats

	c.mu.Unlock()

	c.broker.ToConn(conn.id, EventCheckinSuccess, CheckinSuccess{
		CheckinRecord: record,
		Message:       checkinSuccessMessage,
	})
	c.broker.ToRoom(RoomDisplay, EventUserCheckin, DisplayCheckin{
		UserID:        record.UserID,
		UserName:      record.UserName,
		RedpackAmount: amount,
	})
	c.broker.ToRoom(RoomAdmin, EventUserCheckin, record)
	c.broker.ToAll(EventStatsUpdate, stats)

	c.logger.Info().
		Str("user_id", record.UserID).
		Str("user_name", record.UserName).
		Float64("redpack_amount", amount).
		Msg("Check-in processed.")
}

func (c *Coordinator) handleAdminAction(payload json.RawMessage) {
	var action AdminAction
	if err := json.Unmarshal(payload, &action); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid admin-action payload.")
		return
	}

	c.logger.Info().Str("action", action.Action).Msg("Admin action received.")

	switch action.Action {
	case ActionResetStats:
		c.mu.Lock()
		c.directory.Clear()
		c.ledger.Clear()
		c.allocator.Reset()
		c.stats = RecomputeStats(c.directory, c.ledger)
		stats := c.stats
		c.mu.Unlock()

		c.broker.ToAll(EventStatsUpdate, stats)

	case ActionClearUsers:
		c.mu.Lock()
		c.directory.Clear()
		c.stats = RecomputeStats(c.directory, c.ledger)
		stats := c.stats
		c.mu.Unlock()

		c.broker.ToAll(EventStatsUpdate, stats)

	case ActionClearCheckins:
		c.mu.Lock()
		c.ledger.Clear()
		c.stats = RecomputeStats(c.directory, c.ledger)
		stats := c.stats
		c.mu.Unlock()

		c.broker.ToAll(EventStatsUpdate, stats)

	case ActionBroadcastMessage:
		// Forwarded verbatim; the admin console is trusted.
		c.broker.ToAll(EventSystemMessage, action.Message)

	default:
		c.logger.Debug().Str("action", action.Action).Msg("Ignoring unknown admin action.")
	}
}

func (c *Coordinator) handleConfigUpdate(payload json.RawMessage) {
	var update ConfigUpdate
	if err := json.Unmarshal(payload, &update); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid config-update payload.")
		return
	}

	c.mu.Lock()
	var merged BudgetConfig
	if update.Redpack != nil {
		merged = c.allocator.Merge(*update.Redpack)
	} else {
		merged = c.allocator.Config()
	}
	c.mu.Unlock()

	c.logger.Info().
		Float64("total_budget", merged.TotalBudget).
		Float64("used_budget", merged.UsedBudget).
		Msg("Budget configuration updated.")

	c.broker.ToAll(EventConfigUpdated, ConfigUpdated{Redpack: merged})
}

func (c *Coordinator) handleStatsTick() {
	c.mu.Lock()
	c.stats = RecomputeStats(c.directory, c.ledger)
	stats := c.stats
	c.mu.Unlock()

	c.broker.ToAll(EventStatsUpdate, stats)
}

// Stats returns the currently published statistics snapshot.
func (c *Coordinator) Stats() ActivityStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Users returns a snapshot of every known user.
func (c *Coordinator) Users() []UserState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.directory.All()
}

// Checkins returns the retained check-in records, most recent first.
func (c *Coordinator) Checkins() []CheckinRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ledger.All()
}

// RoomCounts returns the per-room connection counts.
func (c *Coordinator) RoomCounts() RoomCounts {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry.Counts()
}

// Budget returns a copy of the current reward budget configuration.
func (c *Coordinator) Budget() BudgetConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.allocator.Config()
}

// closeSendOnce closes a connection's send queue, tolerating a prior close.
func closeSendOnce(conn *connection) {
	select {
	case <-conn.send:
	default:
		close(conn.send)
	}
}
