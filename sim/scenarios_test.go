package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/syifan/desim/sim"
)

// selfLooper sends one message to itself over a latency-1 Link
// connected to its own Port.
type selfLooper struct {
	sim.Base
	Out *sim.Link[bool]
	In  *sim.Port[bool]

	received []sim.SimulationTime
}

func newSelfLooper(name string) *selfLooper {
	out, err := sim.NewLink[bool](1)
	Expect(err).NotTo(HaveOccurred())
	return &selfLooper{Base: sim.NewBase(name), Out: out, In: sim.NewPort[bool]()}
}

func (c *selfLooper) Behavior(s *sim.Simulator, isStartup, isShutdown bool) {
	if isShutdown {
		return
	}
	if isStartup {
		Expect(c.Out.Send(true)).To(Succeed())
		return
	}
	for range c.In.Messages(s.CurrentTime()) {
		c.received = append(c.received, s.CurrentTime())
	}
}

type delayedSend struct {
	value      int
	extraDelay sim.SimulationTime
}

// oneShotSender sends a fixed set of (value, extraDelay) pairs in
// startup over its Link, optionally requesting Quit right after, then
// does nothing else.
type oneShotSender struct {
	sim.Base
	Out *sim.Link[int]

	sends         []delayedSend
	quitAfterSend bool
}

func newOneShotSender(name string, latency sim.SimulationTime) *oneShotSender {
	out, err := sim.NewLink[int](latency)
	Expect(err).NotTo(HaveOccurred())
	return &oneShotSender{Base: sim.NewBase(name), Out: out}
}

func (s *oneShotSender) send(value int, extraDelay sim.SimulationTime) {
	s.sends = append(s.sends, delayedSend{value, extraDelay})
}

func (s *oneShotSender) Behavior(sr *sim.Simulator, isStartup, isShutdown bool) {
	if !isStartup || isShutdown {
		return
	}
	for _, send := range s.sends {
		Expect(s.Out.SendDelayed(send.value, send.extraDelay)).To(Succeed())
	}
	if s.quitAfterSend {
		sr.Quit()
	}
}

// receiver records every delivered value and the tick it arrived at,
// plus whatever remains unconsumed at shutdown.
type receiver struct {
	sim.Base
	In *sim.Port[int]

	delivered    []int
	deliveredAt  []sim.SimulationTime
	shutdownRem  []int
	shutdownTime []sim.SimulationTime
}

func newReceiver(name string) *receiver {
	return &receiver{Base: sim.NewBase(name), In: sim.NewPort[int]()}
}

func (r *receiver) Behavior(s *sim.Simulator, isStartup, isShutdown bool) {
	if isStartup {
		return
	}
	if isShutdown {
		for msg, t := range r.In.RemainingMessages() {
			r.shutdownRem = append(r.shutdownRem, msg)
			r.shutdownTime = append(r.shutdownTime, t)
		}
		return
	}
	for msg := range r.In.Messages(s.CurrentTime()) {
		r.delivered = append(r.delivered, msg)
		r.deliveredAt = append(r.deliveredAt, s.CurrentTime())
	}
}

// broadcastSender sends one value over a BcastLink in startup.
type broadcastSender struct {
	sim.Base
	Out   *sim.BcastLink[int]
	value int
}

func (s *broadcastSender) Behavior(_ *sim.Simulator, isStartup, isShutdown bool) {
	if !isStartup || isShutdown {
		return
	}
	Expect(s.Out.Send(s.value)).To(Succeed())
}

// timerComponent arms a Timer in startup and, on each firing, re-arms
// with the next delay from a fixed schedule.
type timerComponent struct {
	sim.Base
	Clock *sim.Timer[bool]

	delays  []sim.SimulationTime
	fired   []sim.SimulationTime
	nextIdx int
}

func newTimerComponent(name string, delays []sim.SimulationTime) *timerComponent {
	return &timerComponent{Base: sim.NewBase(name), Clock: sim.NewTimer[bool](), delays: delays}
}

func (c *timerComponent) Behavior(s *sim.Simulator, isStartup, isShutdown bool) {
	if isShutdown {
		return
	}
	if isStartup {
		Expect(c.Clock.Set(true, c.delays[0])).To(Succeed())
		c.nextIdx = 1
		return
	}
	for range c.Clock.Messages(s.CurrentTime()) {
		c.fired = append(c.fired, s.CurrentTime())
	}
	if c.nextIdx < len(c.delays) {
		Expect(c.Clock.Set(true, c.delays[c.nextIdx])).To(Succeed())
		c.nextIdx++
	}
}

var _ = Describe("Simulator scenarios", func() {
	It("delivers a self-loop message at tick latency (scenario 1)", func() {
		s := sim.NewSimulator(0)
		c := newSelfLooper("loop")
		Expect(s.Register(c)).To(Succeed())
		Expect(sim.Connect[bool](c.Out, c.In)).To(Succeed())

		s.Run()

		Expect(c.received).To(Equal([]sim.SimulationTime{1}))
	})

	It("delivers sender to receiver at tick latency (scenario 2)", func() {
		s := sim.NewSimulator(0)
		snd := newOneShotSender("sender", 1)
		snd.send(42, 0)
		rcv := newReceiver("receiver")
		Expect(s.Register(snd)).To(Succeed())
		Expect(s.Register(rcv)).To(Succeed())
		Expect(sim.Connect[int](snd.Out, rcv.In)).To(Succeed())

		s.Run()

		Expect(rcv.delivered).To(Equal([]int{42}))
		Expect(rcv.deliveredAt).To(Equal([]sim.SimulationTime{1}))
	})

	It("delivers multi-delay sends at their own extraDelay-adjusted ticks (scenario 3)", func() {
		s := sim.NewSimulator(0)
		snd := newOneShotSender("sender", 1)
		snd.send(1, 0)
		snd.send(2, 5)
		snd.send(3, 25)
		rcv := newReceiver("receiver")
		Expect(s.Register(snd)).To(Succeed())
		Expect(s.Register(rcv)).To(Succeed())
		Expect(sim.Connect[int](snd.Out, rcv.In)).To(Succeed())

		s.Run()

		Expect(rcv.delivered).To(Equal([]int{1, 2, 3}))
		Expect(rcv.deliveredAt).To(Equal([]sim.SimulationTime{1, 6, 26}))
	})

	It("fans a broadcast out to every target with identical delivery time (scenario 4)", func() {
		s := sim.NewSimulator(0)
		bl, err := sim.NewBcastLink[int](1)
		Expect(err).NotTo(HaveOccurred())
		snd := &broadcastSender{Base: sim.NewBase("sender"), Out: bl, value: 42}
		r1 := newReceiver("r1")
		r2 := newReceiver("r2")

		Expect(s.Register(snd)).To(Succeed())
		Expect(s.Register(r1)).To(Succeed())
		Expect(s.Register(r2)).To(Succeed())
		Expect(sim.Connect[int](snd.Out, r1.In)).To(Succeed())
		Expect(sim.Connect[int](snd.Out, r2.In)).To(Succeed())

		s.Run()

		Expect(r1.delivered).To(Equal([]int{42}))
		Expect(r2.delivered).To(Equal([]int{42}))
		Expect(r1.deliveredAt).To(Equal(r2.deliveredAt))
	})

	It("exposes an undelivered send via remainingMessages after quit (scenario 5)", func() {
		s := sim.NewSimulator(0)
		snd := newOneShotSender("sender", 1)
		snd.send(42, 0)
		snd.quitAfterSend = true
		rcv := newReceiver("receiver")
		Expect(s.Register(snd)).To(Succeed())
		Expect(s.Register(rcv)).To(Succeed())
		Expect(sim.Connect[int](snd.Out, rcv.In)).To(Succeed())

		s.Run()

		Expect(rcv.delivered).To(BeEmpty())
		Expect(rcv.shutdownRem).To(Equal([]int{42}))
		Expect(rcv.shutdownTime).To(Equal([]sim.SimulationTime{1}))
	})

	It("delivers a timer cascade in non-decreasing time order (scenario 6)", func() {
		s := sim.NewSimulator(0)
		delays := []sim.SimulationTime{3, 1, 4, 1, 5}
		c := newTimerComponent("clock", delays)
		Expect(s.Register(c)).To(Succeed())

		s.Run()

		Expect(c.fired).To(HaveLen(len(delays)))
		for i := 1; i < len(c.fired); i++ {
			Expect(c.fired[i]).To(BeNumerically(">=", c.fired[i-1]))
		}
		wantTime := sim.SimulationTime(0)
		for i, d := range delays {
			wantTime += d
			Expect(c.fired[i]).To(Equal(wantTime))
		}
	})
})
