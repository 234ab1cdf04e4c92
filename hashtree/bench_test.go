package hashtree

import (
	"fmt"
	"testing"
)

func BenchmarkBuild(b *testing.B) {
	for _, n := range []int{1000, 10000, 100000} {
		records := makeRecords(n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Build(records); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGenerateProof(b *testing.B) {
	records := makeRecords(100000)
	tree, err := Build(records)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := GenerateProof(tree, records[i%len(records)].ID()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerifyProof(b *testing.B) {
	records := makeRecords(100000)
	tree, err := Build(records)
	if err != nil {
		b.Fatal(err)
	}
	target := records[4242].(testRecord)
	proof, err := GenerateProof(tree, target.id)
	if err != nil {
		b.Fatal(err)
	}
	leaf := leafHash(target)
	root := tree.Root()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !VerifyProof(leaf, proof, root) {
			b.Fatal("proof did not verify")
		}
	}
}

func BenchmarkApplyModification(b *testing.B) {
	records := makeRecords(100000)
	tree, err := Build(records)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := fmt.Sprintf("R%06d", i%len(records))
		tree, err = ApplyModification(tree, id, testRecord{id, fmt.Sprintf("rev %d", i)})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkApplyIncremental(b *testing.B) {
	base := makeRecords(100000)
	tree, err := Build(base)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		batch := []Record{testRecord{fmt.Sprintf("B%08d", i), fmt.Sprintf("appended %d", i)}}
		tree, err = ApplyIncremental(tree, batch)
		if err != nil {
			b.Fatal(err)
		}
	}
}
