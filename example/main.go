// Command example walks through a full payment flow with the traceable
// one-time address protocol: key generation, sending to fresh addresses,
// scanning a batch for owned outputs, spending with a one-time signature,
// and finally de-anonymizing an address with the tracing authority's key.
// It closes with a short tour of hierarchical wallet delegation.
package main

import (
	"crypto/rand"
	"fmt"

	"github.com/onetrace/tosa/pkg/pool"
	"github.com/onetrace/tosa/pkg/stealth"
	"github.com/onetrace/tosa/protocols/hdwsa"
	"github.com/onetrace/tosa/protocols/sitaiba"
)

func payments() error {
	p := sitaiba.NewParams()

	alice, err := p.KeyGen(rand.Reader)
	if err != nil {
		return err
	}
	bob, err := p.KeyGen(rand.Reader)
	if err != nil {
		return err
	}
	authority, err := p.TracerKeyGen(rand.Reader)
	if err != nil {
		return err
	}

	// A sender posts a batch of outputs, some for Alice, some for Bob.
	const n = 10
	addrs := make([]*sitaiba.Address, n)
	for i := range addrs {
		recipient := bob.PublicKey()
		if i%2 == 0 {
			recipient = alice.PublicKey()
		}
		addrs[i], err = p.AddressGen(rand.Reader, recipient, authority.PublicKey())
		if err != nil {
			return err
		}
	}

	// Alice scans the batch with the cheap predicate, in parallel.
	workers := pool.NewPool(0)
	defer workers.TearDown()
	owned := stealth.Scan(workers, n, func(i int) bool {
		return p.FastRecognize(alice, addrs[i])
	})
	fmt.Printf("alice owns outputs %v\n", owned)

	// She confirms one with the full check, derives the one-time signing
	// key, and spends.
	addr := addrs[owned[0]]
	if !p.Recognize(alice, authority.PublicKey(), addr) {
		return fmt.Errorf("full recognition failed")
	}
	key, err := p.SigningKeyGen(alice, addr)
	if err != nil {
		return err
	}
	msg := []byte("spend output to merchant")
	sig, err := p.Sign(rand.Reader, key, addr, msg)
	if err != nil {
		return err
	}
	fmt.Printf("signature verifies: %v\n", p.Verify(addr, msg, sig))

	// The tracing authority recovers the recipient's long-term spend key
	// from the address alone.
	traced, err := p.Trace(authority, addr)
	if err != nil {
		return err
	}
	fmt.Printf("traced to alice: %v\n", traced.Equal(alice.PublicKey().B))
	return nil
}

func delegation() error {
	p := hdwsa.NewParams()

	company, err := p.RootKeyGen(rand.Reader)
	if err != nil {
		return err
	}
	dept, err := p.Delegate(company, "treasury")
	if err != nil {
		return err
	}
	device, err := p.Delegate(dept, "signer-1")
	if err != nil {
		return err
	}
	fmt.Printf("delegated wallet at depth %d, path %v\n", device.Depth(), device.Path())

	// A counterparty derives a one-time verification key for the device
	// wallet; only that wallet recognizes it and can answer with a
	// signature.
	vk, err := p.VerifyKeyDerive(rand.Reader, device.PublicKey())
	if err != nil {
		return err
	}
	key, err := p.SigningKeyGen(device, vk)
	if err != nil {
		return err
	}
	msg := []byte("approve settlement")
	sig, err := p.Sign(rand.Reader, key, msg)
	if err != nil {
		return err
	}
	fmt.Printf("delegated signature verifies: %v\n", p.Verify(vk, msg, sig))
	return nil
}

func main() {
	if err := payments(); err != nil {
		fmt.Println("payments:", err)
		return
	}
	if err := delegation(); err != nil {
		fmt.Println("delegation:", err)
	}
}
