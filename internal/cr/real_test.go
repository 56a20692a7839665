package cr

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference values to more than 120 significant digits.
var reference = map[string]string{
	"pi":          "3.141592653589793238462643383279502884197169399375105820974944592307816406286208998628034825342117067982148086513282306647093",
	"e":           "2.718281828459045235360287471352662497757247093699959574966967627724076630353547594571382178525166427427466391932003059921817",
	"sqrt2":       "1.414213562373095048801688724209698078569671875376948073176679737990732478462107038850387534327641572735013846230912297024924",
	"ln2":         "0.693147180559945309417232121458176568075500134360255254120680009493393621969694715605863326996418687542001481020570685733685",
	"ln10":        "2.302585092994045684017991454684364207601101488628772976033327900967572609677352480235997205089598298341967784042286248633409",
	"sin1":        "0.841470984807896506652502321630298999622563060798371065672751709991910404391239668948639743543052695854349037907920674293259",
	"cos1":        "0.540302305868139717400936607442976603732310420617922227670097255381100394774471764517951856087183089343571731160030089097860",
	"exp_m3":      "0.049787068367863942979342415650061776631699592188423215567627727606060667730199550154054244236633344526401328650893681950864",
	"exp10":       "22026.46579480671651695790064528424436635351261855678107423542635522520281857079257519912096816452589545155550109245783665242",
	"asin_half":   "0.523598775598298873077107230546583814032861566562517636829157432051302734381034833104672470890352844663691347752213717774515",
	"atan2":       "1.107148717794090503017065460178537040070047645401432646676539207433710338977362794013417128686170641434544191005450315810041",
	"cos100":      "0.862318872287683934101938513950842535510084008535510829280162112692721088050926624103095105684277285067135607555162330481105",
	"sin_m7.5":    "-0.93799997677473885794846379814904723643183139550803036755074084304505616741410699206767349518982698071825294073334496684414",
	"tan1":        "1.557407724654902230506974807458360173087250772381520038383946605698861397151727289555099965202242983804633821411748166613323",
	"ln_0.1":      "-2.30258509299404568401799145468436420760110148862877297603332790096757260967735248023599720508959829834196778404228624863340",
	"ln1000":      "6.907755278982137052053974364053092622803304465886318928099983702902717829032057440707991615268794895025903352126858745900228",
	"asin_0.9":    "1.119769514998634186686677055845399615895162186403302882375681863914437537106533336673567440030887832011863313946151191903686",
	"acos_m0.3":   "1.875488980810294127203324652867280609053144731394329297880450244900381195655137658752617369902421682722808999887426700248343",
	"exp_pi":      "23.14069263277926900572908636794854738026610624260021199344504640952434235069045278351697199706754921967595270480108777314442",
	"ln_3.7":      "1.308332819650178760350104216347082956298976098538863187611584780225417137313008585163024328582570362439841168248609418752372",
	"sqrt_1e30p1": "1000000000000000.000000000000000499999999999999999999999999999875000000000000000000000000000062499999999999999999999999999960",
	"atan_m0.01":  "-0.00999966668666523820634011620927954856136935254437663962793941819645655320405877997944664518667409041670798128407565295492",
}

// expressions builds a fresh Real for each reference value.
var expressions = map[string]func() *Real{
	"pi":          func() *Real { return Pi },
	"e":           func() *Real { return One.Exp() },
	"sqrt2":       func() *Real { return FromInt64(2).Sqrt() },
	"ln2":         func() *Real { return FromInt64(2).Ln() },
	"ln10":        func() *Real { return FromInt64(10).Ln() },
	"sin1":        func() *Real { return One.Sin() },
	"cos1":        func() *Real { return One.Cos() },
	"exp_m3":      func() *Real { return FromInt64(-3).Exp() },
	"exp10":       func() *Real { return FromInt64(10).Exp() },
	"asin_half":   func() *Real { return fraction(1, 2).Asin() },
	"atan2":       func() *Real { return FromInt64(2).Atan() },
	"cos100":      func() *Real { return FromInt64(100).Cos() },
	"sin_m7.5":    func() *Real { return fraction(-15, 2).Sin() },
	"tan1":        func() *Real { return One.Tan() },
	"ln_0.1":      func() *Real { return fraction(1, 10).Ln() },
	"ln1000":      func() *Real { return FromInt64(1000).Ln() },
	"asin_0.9":    func() *Real { return fraction(9, 10).Asin() },
	"acos_m0.3":   func() *Real { return fraction(-3, 10).Acos() },
	"exp_pi":      func() *Real { return Pi.Exp() },
	"ln_3.7":      func() *Real { return fraction(37, 10).Ln() },
	"sqrt_1e30p1": func() *Real { return FromBigInt(tenPow(30)).Add(One).Sqrt() },
	"atan_m0.01":  func() *Real { return fraction(-1, 100).Atan() },
}

func tenPow(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

// requireWithinOneULP checks |ref - appr*2^p| < 2^p.
func requireWithinOneULP(t *testing.T, ref string, appr *big.Int, p int) {
	t.Helper()
	want, ok := new(big.Rat).SetString(ref)
	require.True(t, ok, "bad reference %q", ref)

	got := new(big.Rat).SetInt(appr)
	ulp := new(big.Rat).SetInt(new(big.Int).Lsh(big1, uint(-p)))
	got.Quo(got, ulp)

	diff := new(big.Rat).Sub(want, got)
	diff.Abs(diff)
	diff.Mul(diff, ulp)
	assert.True(t, diff.Cmp(new(big.Rat).SetInt64(1)) < 0,
		"error %s ulp at precision %d", diff.FloatString(4), p)
}

func TestReal_ApproxGet_WithinOneULP(t *testing.T) {
	ctx := context.Background()
	for name, build := range expressions {
		t.Run(name, func(t *testing.T) {
			x := build()
			for _, p := range []int{0, -1, -7, -50, -200, -330} {
				appr, err := x.ApproxGet(ctx, p)
				require.NoError(t, err)
				requireWithinOneULP(t, reference[name], appr, p)
			}
		})
	}
}

func TestReal_ApproxGet_PiAtMinus100(t *testing.T) {
	appr, err := newReal(&gaussLegendrePi{}).ApproxGet(context.Background(), -100)
	require.NoError(t, err)
	requireWithinOneULP(t, reference["pi"], appr, -100)
}

func TestReal_ApproxGet_Idempotent(t *testing.T) {
	ctx := context.Background()
	x := Pi.Multiply(One.Exp()).Add(FromInt64(2).Sqrt())

	first, err := x.ApproxGet(ctx, -300)
	require.NoError(t, err)
	second, err := x.ApproxGet(ctx, -300)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Cmp(second))
}

func TestReal_ApproxGet_TighteningIsConsistent(t *testing.T) {
	ctx := context.Background()
	build := func() *Real { return fraction(7, 3).Ln().Multiply(Pi.Cos()) }

	warmed := build()
	_, err := warmed.ApproxGet(ctx, -20)
	require.NoError(t, err)
	_, err = warmed.ApproxGet(ctx, -400)
	require.NoError(t, err)

	for _, p := range []int{-20, -100, -399} {
		fromCache, err := warmed.ApproxGet(ctx, p)
		require.NoError(t, err)
		direct, err := build().ApproxGet(ctx, p)
		require.NoError(t, err)

		diff := new(big.Int).Sub(fromCache, direct)
		assert.True(t, diff.CmpAbs(big1) <= 0, "p=%d cached %s direct %s", p, fromCache, direct)
	}
}

func TestReal_ApproxGet_ReturnsCallerOwnedInt(t *testing.T) {
	ctx := context.Background()
	x := FromInt64(5)
	a, err := x.ApproxGet(ctx, -4)
	require.NoError(t, err)
	a.SetInt64(0)

	b, err := x.ApproxGet(ctx, -4)
	require.NoError(t, err)
	assert.Equal(t, int64(80), b.Int64())
}

func TestReal_ApproxGet_PrecisionOverflow(t *testing.T) {
	ctx := context.Background()
	_, err := One.ApproxGet(ctx, 1<<28)
	require.Error(t, err)
	assert.True(t, IsPrecisionOverflow(err))

	_, err = One.ApproxGet(ctx, -(1<<28)-1)
	assert.True(t, IsPrecisionOverflow(err))

	_, err = One.ApproxGet(ctx, -(1 << 28))
	assert.NoError(t, err)
}

func TestReal_ApproxGet_SlowNodeOvershoots(t *testing.T) {
	ctx := context.Background()
	x := newReal(&prescaledExp{x: fraction(1, 1000)})

	_, err := x.ApproxGet(ctx, -10)
	require.NoError(t, err)
	prec, _, ok := x.cached()
	require.True(t, ok)
	assert.Equal(t, slowMaxPrec, prec)

	_, err = x.ApproxGet(ctx, -70)
	require.NoError(t, err)
	prec, _, _ = x.cached()
	assert.Equal(t, -128, prec)
}

func TestReal_ApproxGet_SqrtOvershoots(t *testing.T) {
	ctx := context.Background()
	x := FromInt64(2).Sqrt()

	appr, err := x.ApproxGet(ctx, -10)
	require.NoError(t, err)
	assert.Equal(t, int64(1448), appr.Int64()) // √2·2^10 = 1448.15
	prec, _, ok := x.cached()
	require.True(t, ok)
	assert.Equal(t, slowMaxPrec, prec)

	_, err = x.ApproxGet(ctx, -200)
	require.NoError(t, err)
	prec, _, _ = x.cached()
	assert.Equal(t, -256, prec)
}

func TestReal_ApproxGet_Concurrent(t *testing.T) {
	ctx := context.Background()
	x := One.Exp()

	type result struct {
		p    int
		appr *big.Int
		err  error
	}
	results := make(chan result, 16)
	for i := 0; i < 16; i++ {
		p := -25 * (i + 1)
		go func() {
			appr, err := x.ApproxGet(ctx, p)
			results <- result{p: p, appr: appr, err: err}
		}()
	}
	for i := 0; i < 16; i++ {
		r := <-results
		require.NoError(t, r.err)
		requireWithinOneULP(t, reference["e"], r.appr, r.p)
	}
}

func TestAtanPi_MatchesGaussLegendre(t *testing.T) {
	c, err := AtanPi.CompareAbs(context.Background(), Pi, -1000)
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}

func TestLn2_MatchesReference(t *testing.T) {
	appr, err := Ln2.ApproxGet(context.Background(), -300)
	require.NoError(t, err)
	requireWithinOneULP(t, reference["ln2"], appr, -300)
}

func TestScale(t *testing.T) {
	tests := []struct {
		k    int64
		n    int
		want int64
	}{
		{5, 2, 20},
		{5, 0, 5},
		{5, -1, 3},
		{-5, -1, -2},
		{7, -2, 2},
		{-7, -2, -2},
		{1, -1, 1},
		{-1, -1, 0},
	}
	for _, tt := range tests {
		got := scale(big.NewInt(tt.k), tt.n)
		assert.Equal(t, tt.want, got.Int64(), "scale(%d, %d)", tt.k, tt.n)
	}
}

func TestBoundLog2(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 1, 2: 2, 3: 2, 4: 3, 7: 3, 8: 4, -8: 4} {
		assert.Equal(t, want, boundLog2(n), "boundLog2(%d)", n)
	}
}

func TestOpName(t *testing.T) {
	assert.Equal(t, "pi", opName(Pi.op))
	assert.Equal(t, "exp", opName(One.Exp().op))
	assert.Equal(t, "add", opName(One.Add(One).op))
}
