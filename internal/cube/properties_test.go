package cube_test

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cubesim/internal/cube"
)

const tol = 1e-4

func near(a, b float32) bool { return mgl32.Abs(a-b) <= tol }

func expectOnLattice(s *cube.Store) {
	GinkgoHelper()
	for i, c := range s.All() {
		rel := c.Position.Mul(1 / s.Scale())
		slot := cube.Coord{
			X: int(mgl32.Round(rel.X(), 0)),
			Y: int(mgl32.Round(rel.Y(), 0)),
			Z: int(mgl32.Round(rel.Z(), 0)),
		}
		Expect(cube.FlatIndex(slot)).To(Equal(i), "slot %d holds a cubie at %v", i, c.Position)
		Expect(rel.ApproxFuncEqual(slot.Vec3(), near)).To(BeTrue(), "cubie %d drifted to %v", i, rel)
	}
}

func expectSameState(a, b *cube.Store) {
	GinkgoHelper()
	aa, bb := a.All(), b.All()
	for i := range aa {
		Expect(aa[i].Position.ApproxFuncEqual(bb[i].Position, near)).To(BeTrue(),
			"slot %d position %v != %v", i, aa[i].Position, bb[i].Position)
		Expect(aa[i].Orientation.ApproxFuncEqual(bb[i].Orientation, near)).To(BeTrue(),
			"slot %d orientation differs", i)
	}
}

var _ = Describe("Turning the cube", func() {
	var (
		store  *cube.Store
		turner *cube.Turner
	)

	BeforeEach(func() {
		store = cube.New(1)
		turner = cube.NewTurner(store)
	})

	Describe("the permutation invariant", func() {
		It("holds after a long mixed sequence of turns", func() {
			rng := rand.New(rand.NewSource(7))
			axes := []mgl32.Vec3{cube.XAxis, cube.YAxis, cube.ZAxis, cube.XAxis.Mul(-1)}
			for i := 0; i < 500; i++ {
				switch rng.Intn(4) {
				case 0:
					turner.ToggleHandedness()
				case 1:
					turner.RotateWhole(axes[rng.Intn(len(axes))])
				default:
					if rng.Intn(2) == 0 {
						turner.SetAngle(180)
					} else {
						turner.SetAngle(90)
					}
				}
				turner.TurnFace(cube.Faces[rng.Intn(len(cube.Faces))])
			}
			expectOnLattice(store)
		})

		It("holds on a scaled lattice", func() {
			store = cube.New(2.1)
			turner = cube.NewTurner(store)
			for _, f := range cube.Faces {
				turner.TurnFace(f)
			}
			expectOnLattice(store)
		})
	})

	DescribeTable("undoing a quarter turn with the opposite handedness",
		func(f cube.Face) {
			turner.TurnFace(f)
			turner.ToggleHandedness()
			turner.TurnFace(f)
			expectSameState(store, cube.New(1))
		},
		Entry("front", cube.Front),
		Entry("back", cube.Back),
		Entry("left", cube.Left),
		Entry("right", cube.Right),
		Entry("top", cube.Top),
		Entry("bottom", cube.Bottom),
	)

	DescribeTable("four quarter turns of one face",
		func(f cube.Face, clockwise bool) {
			turner.SetClockwise(clockwise)
			for i := 0; i < 4; i++ {
				turner.TurnFace(f)
			}
			expectSameState(store, cube.New(1))
		},
		Entry("front cw", cube.Front, true),
		Entry("front ccw", cube.Front, false),
		Entry("right cw", cube.Right, true),
		Entry("top ccw", cube.Top, false),
		Entry("bottom cw", cube.Bottom, true),
		Entry("left cw", cube.Left, true),
		Entry("back ccw", cube.Back, false),
	)

	It("restores the slab after two half turns", func() {
		turner.SetAngle(180)
		turner.TurnFace(cube.Right)
		turner.TurnFace(cube.Right)
		expectSameState(store, cube.New(1))
	})

	Context("front face clockwise on a solved cube", func() {
		It("permutes only the z=1 slab", func() {
			solved := store.All()
			turner.TurnFace(cube.Front)

			after := store.All()
			for i := range after {
				c := cube.CoordOf(i)
				if c.Z != 1 {
					Expect(after[i]).To(Equal(solved[i]), "cubie in slot %v moved", c)
					continue
				}
				Expect(after[i].Position.Z()).To(BeNumerically("~", 1, tol))
			}
			expectOnLattice(store)
		})

		It("is undone by a counter-clockwise front turn", func() {
			turner.TurnFace(cube.Front)
			turner.SetClockwise(false)
			turner.TurnFace(cube.Front)
			expectSameState(store, cube.New(1))
		})
	})

	It("returns to solved after four whole-cube turns about the vertical axis", func() {
		for i := 0; i < 4; i++ {
			turner.RotateWhole(cube.YAxis)
		}
		expectSameState(store, cube.New(1))
	})

	It("reorients every cubie on a whole-cube turn", func() {
		turner.RotateWhole(cube.XAxis)
		want := mgl32.HomogRotate3D(-mgl32.DegToRad(90), cube.XAxis)
		for _, c := range store.All() {
			Expect(c.Orientation.ApproxFuncEqual(want, near)).To(BeTrue())
		}
		expectOnLattice(store)
	})
})
