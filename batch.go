package evergreen

import "github.com/hajimehoshi/ebiten/v2"

// maxBatchVertices caps the vertices submitted in a single draw call.
const maxBatchVertices = 1 << 16

// batchKey groups commands that can share a draw call.
type batchKey struct {
	sprite spriteKind
	blend  BlendMode
}

// commandBatchKey extracts the batch key from a render command.
func commandBatchKey(cmd *RenderCommand) batchKey {
	return batchKey{sprite: cmd.sprite, blend: cmd.BlendMode}
}

// submitBatches walks the sorted commands and coalesces contiguous runs
// with the same batch key into DrawTriangles32 calls.
func (s *Scene) submitBatches(target *ebiten.Image) {
	if len(s.commands) == 0 {
		return
	}
	currentKey := commandBatchKey(&s.commands[0])
	for i := range s.commands {
		cmd := &s.commands[i]
		key := commandBatchKey(cmd)
		if key != currentKey || len(s.batchVerts)+cmd.vertCount > maxBatchVertices {
			s.flushBatch(target, currentKey)
			currentKey = key
		}
		s.appendCommand(cmd)
	}
	s.flushBatch(target, currentKey)
}

// appendCommand copies a command's arena geometry into the pending batch,
// rebasing its indices.
func (s *Scene) appendCommand(cmd *RenderCommand) {
	base := uint32(len(s.batchVerts))
	s.batchVerts = append(s.batchVerts, s.arenaVerts[cmd.vertStart:cmd.vertStart+cmd.vertCount]...)
	for _, idx := range s.arenaInds[cmd.indStart : cmd.indStart+cmd.indCount] {
		s.batchInds = append(s.batchInds, base+idx)
	}
}

// flushBatch submits accumulated vertices as a single DrawTriangles32 call.
func (s *Scene) flushBatch(target *ebiten.Image, key batchKey) {
	if len(s.batchVerts) == 0 {
		return
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = key.blend.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.Filter = ebiten.FilterLinear

	target.DrawTriangles32(s.batchVerts, s.batchInds, spriteImage(key.sprite), &triOp)
	s.stats.drawCalls++

	s.batchVerts = s.batchVerts[:0]
	s.batchInds = s.batchInds[:0]
}

// countBatches counts contiguous groups of commands sharing the same batchKey.
func countBatches(commands []RenderCommand) int {
	if len(commands) == 0 {
		return 0
	}
	count := 1
	prev := commandBatchKey(&commands[0])
	for i := 1; i < len(commands); i++ {
		cur := commandBatchKey(&commands[i])
		if cur != prev {
			count++
			prev = cur
		}
	}
	return count
}
