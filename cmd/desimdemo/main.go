// Command desimdemo wires a small producer/distributor/consumer graph
// on top of package sim, descended from the teacher akita_demo's
// topology but built on desim's own Link/Timer/Port types and
// integer SimulationTime ticks instead of akita's VTimeInSec.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/syifan/desim/logcomponent"
	"github.com/syifan/desim/sim"
)

// DemoMessage is the payload routed from Producer through Distributor
// to a named Consumer.
type DemoMessage struct {
	Content     string
	Destination string
}

// Producer runs once per tick by re-arming a self Timer, a self-loop
// that drives periodic behavior instead of akita's TickingComponent. On
// each run before stopTime it generates, with probability 0.3, a message
// for a randomly chosen consumer.
type Producer struct {
	sim.Base

	Out   *sim.Link[DemoMessage]
	Clock *sim.Timer[struct{}]
	Logs  logcomponent.Handle

	consumers []string
	rng       *rand.Rand
	stopTime  sim.SimulationTime
}

func NewProducer(name string, consumers []string, stopTime sim.SimulationTime, seed int64) *Producer {
	out, err := sim.NewLink[DemoMessage](1)
	if err != nil {
		panic(err)
	}
	return &Producer{
		Base:      sim.NewBase(name),
		Out:       out,
		Clock:     sim.NewTimer[struct{}](),
		Logs:      logcomponent.NewHandle(name, logcomponent.LevelInfo),
		consumers: consumers,
		rng:       rand.New(rand.NewSource(seed)),
		stopTime:  stopTime,
	}
}

func (p *Producer) Behavior(s *sim.Simulator, isStartup, isShutdown bool) {
	if isShutdown {
		return
	}
	if isStartup {
		if err := p.Clock.Set(struct{}{}, 1); err != nil {
			log.Fatalf("producer: arm clock: %v", err)
		}
		return
	}

	now := s.CurrentTime()
	for range p.Clock.Messages(now) {
		// drain the tick event; the re-arm below schedules the next one
	}
	if now >= p.stopTime {
		return
	}

	if p.rng.Float64() < 0.3 {
		dest := p.consumers[p.rng.Intn(len(p.consumers))]
		msg := DemoMessage{
			Content:     fmt.Sprintf("message generated at tick %d", now),
			Destination: dest,
		}
		if err := p.Out.Send(msg); err != nil {
			log.Printf("producer: send failed: %v", err)
		} else if err := p.Logs.Log(s, logcomponent.LevelInfo, "generated message for %s", dest); err != nil {
			log.Printf("producer: log failed: %v", err)
		}
	}

	if err := p.Clock.Set(struct{}{}, 1); err != nil {
		log.Fatalf("producer: re-arm clock: %v", err)
	}
}

// Distributor routes each incoming DemoMessage to the Link matching its
// Destination. Because per-consumer Links live in a map, Register's
// reflection walk cannot discover them; NewDistributor wires each one
// by hand with sim.Wire.
type Distributor struct {
	sim.Base

	In   *sim.Port[DemoMessage]
	Outs map[string]*sim.Link[DemoMessage]
}

func NewDistributor(name string, consumers []string) *Distributor {
	d := &Distributor{
		Base: sim.NewBase(name),
		In:   sim.NewPort[DemoMessage](),
		Outs: make(map[string]*sim.Link[DemoMessage], len(consumers)),
	}
	for _, consumer := range consumers {
		link, err := sim.NewLink[DemoMessage](1)
		if err != nil {
			panic(err)
		}
		if err := sim.Wire(link, d); err != nil {
			panic(err)
		}
		d.Outs[consumer] = link
	}
	return d
}

func (d *Distributor) Behavior(s *sim.Simulator, isStartup, isShutdown bool) {
	if isStartup || isShutdown {
		return
	}
	for msg := range d.In.Messages(s.CurrentTime()) {
		out, ok := d.Outs[msg.Destination]
		if !ok {
			log.Printf("distributor: unknown destination %s", msg.Destination)
			continue
		}
		if err := out.Send(msg); err != nil {
			log.Printf("distributor: forward to %s failed: %v", msg.Destination, err)
		}
	}
}

// Consumer drains whatever DemoMessages are due each tick it runs,
// logging each arrival through the shared logging collaborator.
type Consumer struct {
	sim.Base

	In   *sim.Port[DemoMessage]
	Logs logcomponent.Handle
}

func NewConsumer(name string) *Consumer {
	return &Consumer{
		Base: sim.NewBase(name),
		In:   sim.NewPort[DemoMessage](),
		Logs: logcomponent.NewHandle(name, logcomponent.LevelInfo),
	}
}

func (c *Consumer) Behavior(s *sim.Simulator, isStartup, isShutdown bool) {
	if isStartup {
		return
	}
	if isShutdown {
		for msg, tick := range c.In.RemainingMessages() {
			log.Printf("%s: never consumed %q, queued for tick %d", c.Name(), msg.Content, tick)
		}
		return
	}
	for msg := range c.In.Messages(s.CurrentTime()) {
		if err := c.Logs.Log(s, logcomponent.LevelInfo, "consumed %q", msg.Content); err != nil {
			log.Printf("%s: log failed: %v", c.Name(), err)
		}
	}
}

func main() {
	ticks := flag.Int("ticks", 20, "number of simulation ticks to run")
	flag.Parse()

	if *ticks <= 0 {
		log.Fatal("ticks must be a positive number")
	}

	s := sim.NewSimulator(sim.SimulationTime(*ticks))

	consumerNames := []string{"consumer-1", "consumer-2", "consumer-3"}

	logger := logcomponent.New("logger", os.Stdout)
	producer := NewProducer("producer", consumerNames, sim.SimulationTime(*ticks), 1)
	distributor := NewDistributor("distributor", consumerNames)
	consumers := make(map[string]*Consumer, len(consumerNames))
	for _, name := range consumerNames {
		consumers[name] = NewConsumer(name)
	}

	for _, c := range []sim.Component{logger, producer, distributor} {
		if err := s.Register(c); err != nil {
			log.Fatalf("register %s: %v", c.Base().Name(), err)
		}
	}
	for _, name := range consumerNames {
		if err := s.Register(consumers[name]); err != nil {
			log.Fatalf("register %s: %v", name, err)
		}
	}

	if err := sim.Connect[DemoMessage](producer.Out, distributor.In); err != nil {
		log.Fatalf("connect producer->distributor: %v", err)
	}
	for name, link := range distributor.Outs {
		if err := sim.Connect[DemoMessage](link, consumers[name].In); err != nil {
			log.Fatalf("connect distributor->%s: %v", name, err)
		}
	}
	if err := sim.Connect[logcomponent.Record](producer.Logs.Out, logger.In); err != nil {
		log.Fatalf("connect producer logs: %v", err)
	}
	for name, c := range consumers {
		if err := sim.Connect[logcomponent.Record](c.Logs.Out, logger.In); err != nil {
			log.Fatalf("connect %s logs: %v", name, err)
		}
	}

	fmt.Printf("=== Running desim demo for %d ticks ===\n", *ticks)
	s.Run()
	fmt.Println("=== Simulation complete ===")
}
