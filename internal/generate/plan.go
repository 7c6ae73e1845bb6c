package generate

// DefaultPlan is the standard grades 1-6 generation plan. Kindergarten sets
// are authored by hand (they need counting/shape illustrations), so the plan
// starts at grade 1.
func DefaultPlan() []Topic {
	return []Topic{
		{Grade: 1, Topic: "Addition", Subtopics: []string{"Sums to 10", "Sums to 20", "Word Problems", "Missing Addends"}},
		{Grade: 1, Topic: "Subtraction", Subtopics: []string{"From 10", "From 20", "Word Problems", "Find the Difference"}},
		{Grade: 1, Topic: "Place Value", Subtopics: []string{"Tens and Ones", "Counting to 120", "Comparing Numbers"}},
		{Grade: 1, Topic: "Geometry", Subtopics: []string{"2D Shapes", "3D Shapes", "Partitioning Shapes"}},
		{Grade: 1, Topic: "Measurement", Subtopics: []string{"Length", "Time to Hour", "Money (Coins)"}},

		{Grade: 2, Topic: "Addition", Subtopics: []string{"2-Digit with Regrouping", "3-Digit Addition", "Mental Math"}},
		{Grade: 2, Topic: "Subtraction", Subtopics: []string{"2-Digit with Regrouping", "3-Digit Subtraction", "Word Problems"}},
		{Grade: 2, Topic: "Place Value", Subtopics: []string{"Hundreds", "Skip Counting", "Standard Form"}},
		{Grade: 2, Topic: "Measurement", Subtopics: []string{"Inches and Feet", "Time to 5 Mins", "Money (Mixed Coins)"}},
		{Grade: 2, Topic: "Data", Subtopics: []string{"Bar Graphs", "Line Plots"}},

		{Grade: 3, Topic: "Multiplication", Subtopics: []string{"Arrays", "Facts 0-5", "Facts 6-9", "Properties"}},
		{Grade: 3, Topic: "Division", Subtopics: []string{"Equal Groups", "Facts 1-10", "Inverse Operations"}},
		{Grade: 3, Topic: "Fractions", Subtopics: []string{"Unit Fractions", "Fractions on Number Line", "Equivalent Fractions"}},
		{Grade: 3, Topic: "Area and Perimeter", Subtopics: []string{"Rectangle Area", "Perimeter Calculations"}},
		{Grade: 3, Topic: "Time", Subtopics: []string{"Elapsed Time", "Nearest Minute"}},

		{Grade: 4, Topic: "Multiplication", Subtopics: []string{"Multi-Digit", "Factors and Multiples", "Prime vs Composite"}},
		{Grade: 4, Topic: "Division", Subtopics: []string{"Long Division", "Remainders", "Word Problems"}},
		{Grade: 4, Topic: "Fractions", Subtopics: []string{"Adding Like Denominators", "Mixed Numbers", "Multiplying Fractions"}},
		{Grade: 4, Topic: "Decimals", Subtopics: []string{"Tenths and Hundredths", "Comparing Decimals"}},
		{Grade: 4, Topic: "Geometry", Subtopics: []string{"Lines and Angles", "Symmetry", "Classifying Shapes"}},

		{Grade: 5, Topic: "Decimals", Subtopics: []string{"Add/Sub Decimals", "Multiply/Divide Decimals", "Rounding"}},
		{Grade: 5, Topic: "Fractions", Subtopics: []string{"Add/Sub Unlike Denominators", "Multiplying Mixed Numbers", "Dividing Fractions"}},
		{Grade: 5, Topic: "Volume", Subtopics: []string{"Unit Cubes", "Volume Formula", "Composite Volume"}},
		{Grade: 5, Topic: "Coordinate Plane", Subtopics: []string{"Plotting Points", "Real World Problems"}},
		{Grade: 5, Topic: "Algebraic Thinking", Subtopics: []string{"Order of Operations", "Numerical Expressions"}},

		{Grade: 6, Topic: "Ratios", Subtopics: []string{"Ratio Language", "Unit Rates", "Percentages"}},
		{Grade: 6, Topic: "Number System", Subtopics: []string{"Dividing Fractions", "Multi-Digit Decimals", "Negative Numbers"}},
		{Grade: 6, Topic: "Expressions", Subtopics: []string{"Variables", "Evaluate Expressions", "Equivalent Expressions"}},
		{Grade: 6, Topic: "Equations", Subtopics: []string{"One-Step Equations", "Inequalities"}},
		{Grade: 6, Topic: "Statistics", Subtopics: []string{"Mean, Median, Mode", "Box Plots", "Histograms"}},
	}
}
