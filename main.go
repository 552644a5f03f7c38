package main

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/ebfe/scard"
	"github.com/sirupsen/logrus"

	"github.com/gregLibert/calypso-sam/pkg/bytesutil"
	"github.com/gregLibert/calypso-sam/pkg/sam"
)

// config drives the demo from the environment.
type config struct {
	// Reader selects the reader by substring match; empty picks the first one.
	Reader string `env:"SAM_READER"`
	// Debug enables frame-level logging.
	Debug bool `env:"SAM_DEBUG"`
}

func main() {
	log := logrus.New()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Error parsing environment: %s", err)
	}
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	// --- 1. Hardware Setup ---
	ctx, card := connectToSAM(log, cfg.Reader)

	defer func() {
		if err := ctx.Release(); err != nil {
			log.Warnf("Failed to release context: %v", err)
		}
	}()

	defer func() {
		if err := card.Disconnect(scard.LeaveCard); err != nil {
			log.Warnf("Failed to disconnect card: %v", err)
		}
	}()

	// --- 2. Identity ---
	// For a SAM, the power-on data is the ATR of the card.
	status, err := card.Status()
	if err != nil {
		log.Fatalf("Error reading card status: %s", err)
	}

	module, err := sam.NewSAM(bytesutil.ToHex(status.Atr))
	if err != nil {
		log.Fatalf("Error decoding power-on data: %s", err)
	}

	identity := module.Identity()
	fmt.Println("\n=============================================")
	fmt.Println(" SAM Identity")
	fmt.Println("=============================================")
	fmt.Printf(">> %s\n", module.ProductInfo())
	fmt.Printf(">> Platform: %02X | App Type: %02X | App Subtype: %02X\n",
		identity.Platform, identity.ApplicationType, identity.ApplicationSubType)
	fmt.Printf(">> Software: issuer %02X, version %02X, revision %02X\n",
		identity.SoftwareIssuer, identity.SoftwareVersion, identity.SoftwareRevision)
	fmt.Printf(">> Class byte: %02X | Max digest length: %d\n",
		module.ClassByte(), module.MaxDigestDataLength())

	if identity.Product == sam.ProductUnknown {
		log.Warn("Unknown product type: the inserted card is probably not a SAM.")
	}

	// --- 3. Transaction ---
	mgr, err := sam.NewFreeTransactionManager(card, module)
	if err != nil {
		log.Fatalf("Error building transaction manager: %s", err)
	}
	mgr.SetLogger(log)

	readCountersAndCeilings(log, mgr, module)

	fmt.Println("\n=============================================")
	fmt.Println(" Give Random")
	fmt.Println("=============================================")
	if err := mgr.GiveRandom(bytesutil.Hex("1122334455667788")); err != nil {
		log.Warnf("Give Random failed: %v", err)
	} else {
		fmt.Println(">> Challenge accepted by the module")
	}

	fmt.Printf("\n>> Demo Finished (%d exchanges)\n", len(mgr.Trace()))
}

// connectToSAM handles the PC/SC context establishment and reader connection.
func connectToSAM(log *logrus.Logger, readerHint string) (*scard.Context, *scard.Card) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		log.Fatalf("Error establishing context: %s", err)
	}

	readers, err := ctx.ListReaders()
	if err != nil || len(readers) == 0 {
		if relErr := ctx.Release(); relErr != nil {
			log.Warnf("Failed to release context during error handling: %v", relErr)
		}
		log.Fatal("No smart card reader found.")
	}

	reader := readers[0]
	if readerHint != "" {
		reader = ""
		for _, r := range readers {
			if strings.Contains(r, readerHint) {
				reader = r
				break
			}
		}
		if reader == "" {
			if relErr := ctx.Release(); relErr != nil {
				log.Warnf("Failed to release context during error handling: %v", relErr)
			}
			log.Fatalf("No reader matching %q among %v", readerHint, readers)
		}
	}

	fmt.Printf(">> Using reader: %s\n", reader)

	// A SAM is a contact card; T=0 is the norm, T=1 tolerated.
	card, err := ctx.Connect(reader, scard.ShareShared, scard.ProtocolT0|scard.ProtocolT1)
	if err != nil {
		if relErr := ctx.Release(); relErr != nil {
			log.Warnf("Failed to release context during error handling: %v", relErr)
		}
		log.Fatalf("Error connecting to card: %s", err)
	}

	return ctx, card
}

// readCountersAndCeilings walks the three records of each kind and prints the
// collected values.
func readCountersAndCeilings(log *logrus.Logger, mgr *sam.FreeTransactionManager, module *sam.SAM) {
	fmt.Println("\n=============================================")
	fmt.Println(" Event Counters & Ceilings")
	fmt.Println("=============================================")

	for record := 1; record <= 3; record++ {
		if err := mgr.ReadEventCounterRecord(record); err != nil {
			log.Warnf("Read Event Counter record %d failed: %v", record, err)
		}
		if err := mgr.ReadCeilingRecord(record); err != nil {
			log.Warnf("Read Ceilings record %d failed: %v", record, err)
		}
	}

	counters := module.EventCounters()
	ceilings := module.EventCeilings()

	for number := 0; number <= 26; number++ {
		counter, hasCounter := counters[number]
		ceiling, hasCeiling := ceilings[number]
		if !hasCounter && !hasCeiling {
			continue
		}
		fmt.Printf(">> #%02d counter: %8d | ceiling: %8d\n", number, counter, ceiling)
	}
}
