package calib

// defaultEntries holds the points each step size sustained per burst when the
// table was measured with the six-stage stepper.
var defaultEntries = []Entry{
	{Dt: 0.0005, Points: 577638},
	{Dt: 0.0006, Points: 481366},
	{Dt: 0.0007, Points: 412599},
	{Dt: 0.0008, Points: 357615.5},
	{Dt: 0.0009, Points: 317880},
	{Dt: 0.001, Points: 286092.5},
	{Dt: 0.0011, Points: 259143.333333},
	{Dt: 0.0012, Points: 237548},
	{Dt: 0.0013, Points: 218869.5},
	{Dt: 0.0014, Points: 203236},
	{Dt: 0.0015, Points: 189687},
	{Dt: 0.0016, Points: 177634},
	{Dt: 0.0018, Points: 157897},
	{Dt: 0.002, Points: 142001.833333},
	{Dt: 0.0022, Points: 129024.142857},
	{Dt: 0.0025, Points: 113496.125},
	{Dt: 0.0028, Points: 101304.555556},
	{Dt: 0.0029, Points: 97811.222222},
	{Dt: 0.003, Points: 94527.4},
	{Dt: 0.0031, Points: 91478.2},
	{Dt: 0.0032, Points: 88619.4},
	{Dt: 0.0033, Points: 85916.636364},
	{Dt: 0.0034, Points: 83389.636364},
	{Dt: 0.0035, Points: 81007.090909},
	{Dt: 0.0036, Points: 78743.583333},
	{Dt: 0.0037, Points: 76615.416667},
	{Dt: 0.0038, Points: 74599.25},
	{Dt: 0.0039, Points: 72676},
	{Dt: 0.004, Points: 70859.076923},
	{Dt: 0.0041, Points: 69130.846154},
	{Dt: 0.0042, Points: 67476.642857},
	{Dt: 0.0043, Points: 65907.357143},
	{Dt: 0.0044, Points: 64402.666667},
	{Dt: 0.0045, Points: 62971.466667},
	{Dt: 0.0046, Points: 61602.533333},
	{Dt: 0.0047, Points: 60286.1875},
	{Dt: 0.0048, Points: 59030.25},
	{Dt: 0.0049, Points: 57825.5625},
	{Dt: 0.005, Points: 56664.411765},
	{Dt: 0.0051, Points: 55553.294118},
	{Dt: 0.0052, Points: 54485},
	{Dt: 0.0054, Points: 52463.222222},
	{Dt: 0.0056, Points: 50586.263158},
	{Dt: 0.0058, Points: 48841.842105},
	{Dt: 0.006, Points: 47211.05},
	{Dt: 0.0062, Points: 45685.666667},
	{Dt: 0.0064, Points: 44255.818182},
	{Dt: 0.0066, Points: 42914.772727},
	{Dt: 0.0068, Points: 41650.73913},
	{Dt: 0.007, Points: 40459.083333},
	{Dt: 0.0072, Points: 39335.208333},
	{Dt: 0.0074, Points: 38270.68},
	{Dt: 0.0077, Points: 36778.346154},
	{Dt: 0.008, Points: 35398},
	{Dt: 0.0083, Points: 34117.571429},
	{Dt: 0.0086, Points: 32926.517241},
	{Dt: 0.0089, Points: 31815.833333},
	{Dt: 0.0092, Points: 30777.612903},
	{Dt: 0.0096, Points: 29493.939394},
	{Dt: 0.01, Points: 28313.588235},
	{Dt: 0.0104, Points: 27223.638889},
	{Dt: 0.0109, Points: 25974.405405},
	{Dt: 0.0114, Points: 24834.410256},
	{Dt: 0.0119, Points: 23790.268293},
	{Dt: 0.0125, Points: 22647.767442},
	{Dt: 0.0131, Points: 21609.977778},
	{Dt: 0.0138, Points: 20513.166667},
	{Dt: 0.0146, Points: 19388.627451},
	{Dt: 0.0154, Points: 18381.132075},
	{Dt: 0.0163, Points: 17365.719298},
	{Dt: 0.0173, Points: 16361.6},
	{Dt: 0.0185, Points: 15299.9375},
	{Dt: 0.0199, Points: 14223.202899},
	{Dt: 0.0215, Points: 13164.4},
	{Dt: 0.0233, Points: 12147.123457},
	{Dt: 0.0255, Points: 11098.876404},
	{Dt: 0.0281, Points: 10071.693878},
	{Dt: 0.0284, Points: 9965.282828},
	{Dt: 0.0287, Points: 9861.1},
	{Dt: 0.029, Points: 9759.059406},
	{Dt: 0.0294, Points: 9626.242718},
	{Dt: 0.0298, Points: 9497.009615},
	{Dt: 0.0302, Points: 9371.179245},
	{Dt: 0.0306, Points: 9248.672897},
	{Dt: 0.031, Points: 9129.293578},
	{Dt: 0.0314, Points: 9012.981818},
	{Dt: 0.0318, Points: 8899.594595},
	{Dt: 0.0322, Points: 8789},
	{Dt: 0.0326, Points: 8681.149123},
	{Dt: 0.033, Points: 8575.896552},
	{Dt: 0.0334, Points: 8473.17094},
	{Dt: 0.0339, Points: 8348.176471},
	{Dt: 0.0344, Points: 8226.809917},
	{Dt: 0.0349, Points: 8108.934426},
	{Dt: 0.0354, Points: 7994.379032},
	{Dt: 0.0359, Points: 7883.015873},
	{Dt: 0.0364, Points: 7774.710938},
	{Dt: 0.0369, Points: 7669.348837},
	{Dt: 0.0374, Points: 7566.801527},
	{Dt: 0.038, Points: 7447.308271},
	{Dt: 0.0386, Points: 7331.525926},
	{Dt: 0.0392, Points: 7219.291971},
	{Dt: 0.0398, Points: 7110.435714},
	{Dt: 0.0404, Points: 7004.816901},
	{Dt: 0.041, Points: 6902.298611},
	{Dt: 0.0417, Points: 6786.417808},
	{Dt: 0.0424, Points: 6674.355705},
	{Dt: 0.0431, Points: 6565.940397},
	{Dt: 0.0438, Points: 6460.987013},
	{Dt: 0.0445, Points: 6359.339744},
	{Dt: 0.0453, Points: 6247.012579},
	{Dt: 0.0461, Points: 6138.592593},
	{Dt: 0.0469, Points: 6033.866667},
	{Dt: 0.0477, Points: 5932.660714},
	{Dt: 0.0486, Points: 5822.777778},
	{Dt: 0.0495, Points: 5716.896552},
	{Dt: 0.0504, Points: 5614.79661},
	{Dt: 0.0514, Points: 5505.541436},
	{Dt: 0.0524, Points: 5400.467391},
	{Dt: 0.0534, Points: 5299.324468},
	{Dt: 0.0545, Points: 5192.348958},
	{Dt: 0.0556, Points: 5089.615385},
	{Dt: 0.0568, Points: 4982.075},
	{Dt: 0.058, Points: 4878.985294},
	{Dt: 0.0593, Points: 4772.014354},
	{Dt: 0.0606, Points: 4669.633803},
	{Dt: 0.062, Points: 4564.178899},
	{Dt: 0.0634, Points: 4463.381166},
	{Dt: 0.0649, Points: 4360.214912},
	{Dt: 0.0665, Points: 4255.294872},
	{Dt: 0.0682, Points: 4149.216667},
	{Dt: 0.0699, Points: 4048.296748},
	{Dt: 0.0717, Points: 3946.654762},
	{Dt: 0.0736, Points: 3844.764479},
	{Dt: 0.0756, Points: 3743.041353},
	{Dt: 0.0777, Points: 3641.872263},
	{Dt: 0.0799, Points: 3541.58363},
	{Dt: 0.0823, Points: 3438.3},
	{Dt: 0.0848, Points: 3336.926421},
	{Dt: 0.0875, Points: 3233.951299},
	{Dt: 0.0903, Points: 3133.666667},
	{Dt: 0.0933, Points: 3032.899696},
	{Dt: 0.0965, Points: 2932.320588},
	{Dt: 0.1, Points: 2829.684659},
}
