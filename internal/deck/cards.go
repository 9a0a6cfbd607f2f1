package deck

// builtinCards is the shipped catalogue. Choice IDs are cardID*10+n so
// they stay unique across the deck.
func builtinCards() []Card {
	return []Card{
		// ---- NEEDS ----
		{
			ID: 101, Title: "Grocery Run", Category: CategoryNeeds, Difficulty: 1, MinMonth: 1,
			Description: "Your monthly grocery run is due. The fancy organic store just opened next door.",
			Choices: []Choice{
				{ID: 1011, Text: "Stick to the local kirana list", WealthImpact: -2000, HappinessImpact: 2, LiteracyImpact: 3, IsRecommended: true,
					Feedback: "Planned grocery shopping keeps the food budget predictable."},
				{ID: 1012, Text: "Go all-organic this month", WealthImpact: -4500, HappinessImpact: 5,
					Feedback: "Premium groceries more than doubled the bill for the same calories."},
			},
		},
		{
			ID: 102, Title: "Electricity Bill Shock", Category: CategoryNeeds, Difficulty: 1, MinMonth: 1,
			Description: "Summer hit and the AC ran all month. The electricity bill is 60% higher than usual.",
			Choices: []Choice{
				{ID: 1021, Text: "Pay it and set the AC to 26°C", WealthImpact: -1600, LiteracyImpact: 2, IsRecommended: true,
					Feedback: "Paying utilities on time avoids reconnection charges and late fees."},
				{ID: 1022, Text: "Delay payment to next month", WealthImpact: -300, HappinessImpact: -3, CreditImpact: -10,
					Feedback: "Late utility payments pile up surcharges and can dent your credit record."},
			},
		},
		{
			ID: 103, Title: "Landlord Raises Rent", Category: CategoryNeeds, Difficulty: 2, MinMonth: 4,
			Description: "Your landlord wants 8% more rent from next quarter, citing market rates.",
			Choices: []Choice{
				{ID: 1031, Text: "Negotiate a 4% raise for a longer lease", WealthImpact: -500, LiteracyImpact: 5, IsRecommended: true,
					Feedback: "Negotiating with a longer commitment is a classic win-win move."},
				{ID: 1032, Text: "Accept the full raise silently", WealthImpact: -800, HappinessImpact: -4,
					Feedback: "Housing costs that creep up unchallenged squeeze everything else."},
				{ID: 1033, Text: "Threaten to move out", HappinessImpact: -6,
					Feedback: "Empty threats sour the relationship without saving a rupee."},
			},
		},
		{
			ID: 104, Title: "Health Insurance Renewal", Category: CategoryNeeds, Difficulty: 3, MinMonth: 8,
			Description: "Your health insurance is up for renewal. Premium is ₹6,000, or you can lapse it and 'self-insure'.",
			Choices: []Choice{
				{ID: 1041, Text: "Renew the policy", WealthImpact: -6000, LiteracyImpact: 6, IsRecommended: true,
					Feedback: "One hospital stay costs more than a decade of premiums."},
				{ID: 1042, Text: "Let it lapse and keep the cash", WealthImpact: 0, HappinessImpact: -2, LiteracyImpact: -3,
					Feedback: "Going uninsured converts a small fixed cost into unbounded risk."},
			},
		},

		// ---- WANTS ----
		{
			ID: 111, Title: "Weekend Movie Plan", Category: CategoryWants, Difficulty: 1, MinMonth: 1,
			Description: "Friends are planning a multiplex outing with dinner after. Estimated damage: ₹1,500.",
			Choices: []Choice{
				{ID: 1111, Text: "Join them", WealthImpact: -1500, HappinessImpact: 6,
					Feedback: "Fun has a price; small treats are fine when budgeted."},
				{ID: 1112, Text: "Suggest a home movie night instead", WealthImpact: -300, HappinessImpact: 4, LiteracyImpact: 2, IsRecommended: true,
					Feedback: "Cheaper alternatives keep both friends and wallet happy."},
			},
		},
		{
			ID: 112, Title: "New Phone Temptation", Category: CategoryWants, Difficulty: 2, MinMonth: 2,
			Description: "Your phone works fine, but the new model launch videos are everywhere.",
			Choices: []Choice{
				{ID: 1121, Text: "Buy it on a no-cost EMI", WealthImpact: -4000, HappinessImpact: 8, CreditImpact: -5,
					Feedback: "No-cost EMIs bake the interest into the price and crowd next year's budget."},
				{ID: 1122, Text: "Keep the current phone another year", HappinessImpact: -2, LiteracyImpact: 4, IsRecommended: true,
					Feedback: "A working phone replaced late is the cheapest phone you will ever own."},
			},
		},
		{
			ID: 113, Title: "Streaming Stack", Category: CategoryWants, Difficulty: 2, MinMonth: 3,
			Description: "You now pay for four streaming services and watch two.",
			Choices: []Choice{
				{ID: 1131, Text: "Cancel the unused ones", HappinessImpact: 1, LiteracyImpact: 4, IsRecommended: true,
					CancelsExpense: "Streaming Bundle",
					Feedback: "Auditing subscriptions is free money."},
				{ID: 1132, Text: "Keep them, you might watch someday", WealthImpact: -200, HappinessImpact: 1,
					Feedback: "'Someday' subscriptions are the quietest leak in a budget."},
			},
		},
		{
			ID: 114, Title: "Gym Membership Offer", Category: CategoryWants, Difficulty: 1, MinMonth: 2,
			Description: "A new gym offers a ₹700/month membership with the first month free.",
			Choices: []Choice{
				{ID: 1141, Text: "Sign up and commit", HappinessImpact: 4, LiteracyImpact: 1,
					AddsExpense: 700, ExpenseName: "Gym Membership",
					Feedback: "A recurring cost is worth it only if you actually go."},
				{ID: 1142, Text: "Start with free runs in the park", HappinessImpact: 2, LiteracyImpact: 3, IsRecommended: true,
					Feedback: "Build the habit first, buy the membership later."},
			},
		},
		{
			ID: 115, Title: "Streaming Bundle Deal", Category: CategoryWants, Difficulty: 1, MinMonth: 1,
			Description: "A telecom bundle offers all major OTT apps for ₹400/month.",
			Choices: []Choice{
				{ID: 1151, Text: "Take the bundle", HappinessImpact: 4,
					AddsExpense: 400, ExpenseName: "Streaming Bundle",
					Feedback: "Bundles are fine while you use them; review them quarterly."},
				{ID: 1152, Text: "Skip it", LiteracyImpact: 2, IsRecommended: true,
					Feedback: "Every avoided subscription is a raise you gave yourself."},
			},
		},

		// ---- EMERGENCY ----
		{
			ID: 121, Title: "Bike Breakdown", Category: CategoryEmergency, Difficulty: 1, MinMonth: 1,
			Description: "Your bike died on the highway. The mechanic quotes ₹3,000 for the repair.",
			Choices: []Choice{
				{ID: 1211, Text: "Pay for the full repair", WealthImpact: -3000, LiteracyImpact: 2, IsRecommended: true,
					Feedback: "Fixing it properly now beats a bigger failure later."},
				{ID: 1212, Text: "Patch it cheap for ₹800", WealthImpact: -800, HappinessImpact: -3,
					Feedback: "Cheap patches on essential transport tend to come back with interest."},
			},
		},
		{
			ID: 122, Title: "Dental Emergency", Category: CategoryEmergency, Difficulty: 2, MinMonth: 3,
			Description: "A cracked tooth needs a root canal: ₹8,000 now, or painkillers and hope.",
			Choices: []Choice{
				{ID: 1221, Text: "Get the root canal", WealthImpact: -8000, HappinessImpact: 2, LiteracyImpact: 3, IsRecommended: true,
					Feedback: "Health emergencies are exactly what an emergency buffer exists for."},
				{ID: 1222, Text: "Painkillers for now", WealthImpact: -500, HappinessImpact: -8,
					Feedback: "Deferred medical care usually returns as a larger bill plus suffering."},
			},
		},
		{
			ID: 123, Title: "Parent's Hospital Deposit", Category: CategoryEmergency, Difficulty: 3, MinMonth: 10,
			Description: "A parent needs a planned surgery. The hospital wants a ₹15,000 deposit this week.",
			Choices: []Choice{
				{ID: 1231, Text: "Pay from savings", WealthImpact: -15000, HappinessImpact: 5, LiteracyImpact: 4, IsRecommended: true,
					Feedback: "This is the moment savings were for."},
				{ID: 1232, Text: "Swipe it on the credit card", WealthImpact: -15000, CreditImpact: -20, HappinessImpact: 3,
					Feedback: "Revolving a hospital bill at 40% APR makes a hard month a hard year."},
			},
		},
		{
			ID: 124, Title: "Laptop Dies Before a Deadline", Category: CategoryEmergency, Difficulty: 2, MinMonth: 5,
			Description: "Your work laptop won't boot and a deliverable is due. Repair ₹5,000 in 3 days, or rent one for ₹1,200/week.",
			Choices: []Choice{
				{ID: 1241, Text: "Repair and rent for one week", WealthImpact: -6200, LiteracyImpact: 3, IsRecommended: true,
					Feedback: "Protecting your income source is the first rule of emergencies."},
				{ID: 1242, Text: "Buy a new one on EMI", WealthImpact: -8000, HappinessImpact: 4, CreditImpact: -10,
					Feedback: "An emergency is the most expensive time to make a shopping decision."},
			},
		},

		// ---- SOCIAL ----
		{
			ID: 131, Title: "Cousin's Wedding", Category: CategorySocial, Difficulty: 1, MinMonth: 1,
			Description: "A cousin's wedding means travel, an outfit, and a gift.",
			Choices: []Choice{
				{ID: 1311, Text: "Attend with a sensible budget", WealthImpact: -4000, HappinessImpact: 8, LiteracyImpact: 2, IsRecommended: true,
					Feedback: "Relationships matter; a planned spend keeps them affordable."},
				{ID: 1312, Text: "Go big: designer outfit, gold gift", WealthImpact: -12000, HappinessImpact: 10,
					Feedback: "One weekend of flex can erase a month of savings."},
				{ID: 1313, Text: "Skip it with an excuse", WealthImpact: -500, HappinessImpact: -6,
					Feedback: "Saving money by spending social capital is rarely a good trade."},
			},
		},
		{
			ID: 132, Title: "Office Farewell Collection", Category: CategorySocial, Difficulty: 1, MinMonth: 2,
			Description: "The office is pooling ₹500 per head for a colleague's farewell gift.",
			Choices: []Choice{
				{ID: 1321, Text: "Chip in", WealthImpact: -500, HappinessImpact: 3, IsRecommended: true,
					Feedback: "Small social spends are part of a working life's budget."},
				{ID: 1322, Text: "Quietly opt out", HappinessImpact: -2,
					Feedback: "Fine occasionally, but reputation compounds like interest."},
			},
		},
		{
			ID: 133, Title: "Friend Asks for a Loan", Category: CategorySocial, Difficulty: 3, MinMonth: 8,
			Description: "A close friend asks to borrow ₹10,000, promising to return it 'next month'.",
			Choices: []Choice{
				{ID: 1331, Text: "Lend only what you can gift", WealthImpact: -3000, HappinessImpact: 2, LiteracyImpact: 5, IsRecommended: true,
					Feedback: "Lend to friends only amounts you can afford to never see again."},
				{ID: 1332, Text: "Lend the full amount", WealthImpact: -10000, HappinessImpact: 4,
					Feedback: "Informal loans strain both the budget and the friendship."},
				{ID: 1333, Text: "Refuse outright", HappinessImpact: -5,
					Feedback: "A flat no protects the wallet at a real social cost."},
			},
		},
		{
			ID: 134, Title: "Festival Gifting Season", Category: CategorySocial, Difficulty: 2, MinMonth: 6,
			Description: "Diwali is here: gifts for family, sweets for neighbours, and the office Secret Santa.",
			Choices: []Choice{
				{ID: 1341, Text: "Set a gift budget and stick to it", WealthImpact: -3500, HappinessImpact: 7, LiteracyImpact: 3, IsRecommended: true,
					Feedback: "Festivals on a budget are still festivals."},
				{ID: 1342, Text: "Swipe now, think in January", WealthImpact: -9000, HappinessImpact: 9, CreditImpact: -5,
					Feedback: "Festive credit card bills arrive exactly when the glow fades."},
			},
		},

		// ---- DEBT ----
		{
			ID: 141, Title: "Credit Card Minimum Due", Category: CategoryDebt, Difficulty: 2, MinMonth: 6,
			Description: "Your card statement shows ₹12,000 due. The 'minimum amount due' is only ₹600.",
			Choices: []Choice{
				{ID: 1411, Text: "Pay the statement in full", WealthImpact: -12000, CreditImpact: 15, LiteracyImpact: 6, IsRecommended: true,
					Feedback: "Full payment means zero interest. The minimum-due trap charges ~40% a year."},
				{ID: 1412, Text: "Pay only the minimum", WealthImpact: -600, CreditImpact: -15, HappinessImpact: 2,
					Feedback: "Minimum payments mostly cover interest; the principal barely moves."},
			},
		},
		{
			ID: 142, Title: "Prepay or Invest?", Category: CategoryDebt, Difficulty: 3, MinMonth: 12,
			Description: "A bonus lands. Your personal loan charges 14%; a fixed deposit pays 7%.",
			Choices: []Choice{
				{ID: 1421, Text: "Prepay the 14% loan", WealthImpact: -10000, CreditImpact: 10, LiteracyImpact: 7, IsRecommended: true,
					Feedback: "Paying off 14% debt is a guaranteed 14% return. No FD beats that."},
				{ID: 1422, Text: "Park it in the FD", WealthImpact: -10000, LiteracyImpact: 2,
					Feedback: "Earning 7% while paying 14% is a negative-carry trade on yourself."},
			},
		},
		{
			ID: 143, Title: "Settlement Offer", Category: CategoryDebt, Difficulty: 4, MinMonth: 18,
			Description: "A recovery agent offers to 'settle' an old dues of ₹20,000 for ₹8,000, marked as 'settled' on your report.",
			Choices: []Choice{
				{ID: 1431, Text: "Negotiate full closure for ₹12,000", WealthImpact: -12000, CreditImpact: 20, LiteracyImpact: 8, IsRecommended: true,
					Feedback: "'Closed' on a credit report is worth far more than 'settled'."},
				{ID: 1432, Text: "Take the ₹8,000 settlement", WealthImpact: -8000, CreditImpact: -30,
					Feedback: "A 'settled' flag haunts loan applications for years."},
			},
		},

		// ---- SHOPPING ----
		{
			ID: 151, Title: "Mega Sale Weekend", Category: CategoryShopping, Difficulty: 2, MinMonth: 6,
			Description: "The big online sale is on: 'up to 80% off'. Your cart already has ₹7,000 of maybes.",
			Choices: []Choice{
				{ID: 1511, Text: "Buy only the two things you planned", WealthImpact: -2500, HappinessImpact: 4, LiteracyImpact: 4, IsRecommended: true,
					Feedback: "A sale is only a saving if you were going to buy it anyway."},
				{ID: 1512, Text: "Checkout the whole cart", WealthImpact: -7000, HappinessImpact: 7,
					Feedback: "Discount dopamine fades; the statement does not."},
				{ID: 1513, Text: "Close the app", LiteracyImpact: 3, HappinessImpact: -1,
					Feedback: "The 100% discount of not buying."},
			},
		},
		{
			ID: 152, Title: "Buy-Now-Pay-Later Nudge", Category: CategoryShopping, Difficulty: 3, MinMonth: 9,
			Description: "At checkout, the app offers to split a ₹6,000 purchase into 'painless' BNPL installments.",
			Choices: []Choice{
				{ID: 1521, Text: "Pay upfront if you're buying", WealthImpact: -6000, LiteracyImpact: 5, IsRecommended: true,
					Feedback: "If you can't pay once, you can't pay four times either."},
				{ID: 1522, Text: "Take the BNPL split", WealthImpact: -1500, CreditImpact: -10, HappinessImpact: 3,
					Feedback: "BNPL late fees and credit reporting bite harder than they advertise."},
			},
		},

		// ---- INVESTMENT ----
		{
			ID: 161, Title: "Start a SIP?", Category: CategoryInvestment, Difficulty: 3, MinMonth: 12,
			Description: "A friend shows off their mutual fund SIP returns and nudges you to start one.",
			Choices: []Choice{
				{ID: 1611, Text: "Start a small index-fund SIP", WealthImpact: -2000, LiteracyImpact: 8, HappinessImpact: 2, IsRecommended: true,
					Feedback: "Consistent small investments beat sporadic large ones."},
				{ID: 1612, Text: "Wait for the 'right time'", LiteracyImpact: -2,
					Feedback: "Time in the market beats timing the market."},
			},
		},
		{
			ID: 162, Title: "Hot Tip From a Group", Category: CategoryInvestment, Difficulty: 4, MinMonth: 15,
			Description: "A Telegram group promises a small-cap stock will '3x in 3 weeks'.",
			Choices: []Choice{
				{ID: 1621, Text: "Ignore it and stick to your plan", LiteracyImpact: 6, IsRecommended: true,
					Feedback: "If the tip were real, they wouldn't need you."},
				{ID: 1622, Text: "Punt ₹5,000 on it", WealthImpact: -4000, HappinessImpact: -3, LiteracyImpact: 2,
					Feedback: "Pump-and-dump groups need exit liquidity. That was you."},
			},
		},
		{
			ID: 163, Title: "Gold vs. Equity Allocation", Category: CategoryInvestment, Difficulty: 4, MinMonth: 20,
			Description: "Your portfolio is all tech. An advisor suggests adding gold as a hedge.",
			Choices: []Choice{
				{ID: 1631, Text: "Diversify a slice into gold", LiteracyImpact: 7, HappinessImpact: 1, IsRecommended: true,
					Feedback: "Uncorrelated assets smooth the ride without killing returns."},
				{ID: 1632, Text: "Stay all-in on tech", LiteracyImpact: 1,
					Feedback: "Concentration builds wealth and destroys it, in the same motion."},
			},
		},

		// ---- NEWS (market events) ----
		{
			ID: 171, Title: "Tech Boom", Category: CategoryNews, Difficulty: 3, MinMonth: 12,
			Description: "A global AI wave lifts Indian IT: hiring sprees, record order books, euphoric analysts.",
			MarketEvent: &MarketEvent{
				Title:       "Tech Boom",
				Description: "AI demand supercycle lifts technology stocks.",
				SectorImpacts: map[string]float64{
					"tech": 1.25, "gold": 0.95, "real_estate": 1.02,
				},
			},
			Choices: []Choice{
				{ID: 1711, Text: "Rebalance and book partial profits", LiteracyImpact: 6, IsRecommended: true,
					Feedback: "Booms are when you rebalance, not when you lever up."},
				{ID: 1712, Text: "Do nothing", LiteracyImpact: 1,
					Feedback: "Doing nothing is a position too. Sometimes a fine one."},
			},
		},
		{
			ID: 172, Title: "Gold Rush", Category: CategoryNews, Difficulty: 3, MinMonth: 14,
			Description: "Geopolitical jitters send investors scrambling for gold.",
			MarketEvent: &MarketEvent{
				Title:       "Gold Rush",
				Description: "Safe-haven buying spikes gold prices.",
				SectorImpacts: map[string]float64{
					"gold": 1.20, "tech": 0.90, "real_estate": 0.98,
				},
			},
			Choices: []Choice{
				{ID: 1721, Text: "Hold your allocation", LiteracyImpact: 5, IsRecommended: true,
					Feedback: "Chasing the asset that already ran is buying yesterday's returns."},
				{ID: 1722, Text: "Pile into gold now", WealthImpact: -1000, LiteracyImpact: 1,
					Feedback: "Panic premiums fade faster than headlines."},
			},
		},
		{
			ID: 173, Title: "Real Estate Revival", Category: CategoryNews, Difficulty: 3, MinMonth: 16,
			Description: "Rate cuts and new infrastructure corridors reignite property demand.",
			MarketEvent: &MarketEvent{
				Title:       "Real Estate Revival",
				Description: "Cheap credit revives the property market.",
				SectorImpacts: map[string]float64{
					"real_estate": 1.15, "gold": 1.0, "tech": 1.05,
				},
			},
			Choices: []Choice{
				{ID: 1731, Text: "Research REITs before acting", LiteracyImpact: 6, IsRecommended: true,
					Feedback: "REITs give property exposure without a 20-year EMI."},
				{ID: 1732, Text: "Ignore the news", LiteracyImpact: 1,
					Feedback: "Not every headline needs a trade."},
			},
		},
		{
			ID: 174, Title: "Tech Crash", Category: CategoryNews, Difficulty: 4, MinMonth: 20,
			Description: "Earnings misses and layoffs cascade through the tech sector. Screens are deep red.",
			MarketEvent: &MarketEvent{
				Title:       "Tech Crash",
				Description: "Valuations reset violently across technology.",
				SectorImpacts: map[string]float64{
					"tech": 0.75, "gold": 1.10, "real_estate": 1.0,
				},
			},
			Choices: []Choice{
				{ID: 1741, Text: "Hold and keep your SIP running", LiteracyImpact: 7, IsRecommended: true,
					Feedback: "Crashes transfer wealth from the impatient to the patient."},
				{ID: 1742, Text: "Panic-sell everything", HappinessImpact: -5, LiteracyImpact: -3,
					Feedback: "Selling the bottom locks in the loss you were afraid of."},
			},
		},
		{
			ID: 175, Title: "Market Rally", Category: CategoryNews, Difficulty: 3, MinMonth: 18,
			Description: "A broad-based rally: indices at all-time highs, everyone's a genius.",
			MarketEvent: &MarketEvent{
				Title:       "Market Rally",
				Description: "Liquidity-driven rally lifts most sectors.",
				SectorImpacts: map[string]float64{
					"tech": 1.10, "gold": 0.95, "real_estate": 1.12,
				},
			},
			Choices: []Choice{
				{ID: 1751, Text: "Stick to your asset allocation", LiteracyImpact: 6, IsRecommended: true,
					Feedback: "Discipline in euphoria is what discipline is for."},
				{ID: 1752, Text: "Go all-in at the top", WealthImpact: -2000, LiteracyImpact: -2,
					Feedback: "All-time highs feel safest exactly when they are not."},
			},
		},
		{
			ID: 176, Title: "Crypto Crash Contagion", Category: CategoryNews, Difficulty: 4, MinMonth: 22,
			Description: "A crypto exchange collapse spills fear into risk assets; gold catches the safe-haven bid.",
			MarketEvent: &MarketEvent{
				Title:       "Crypto Crash",
				Description: "Crypto contagion dents risk appetite.",
				SectorImpacts: map[string]float64{
					"tech": 0.85, "gold": 1.15, "real_estate": 1.0,
				},
			},
			Choices: []Choice{
				{ID: 1761, Text: "Note the lesson on custody risk", LiteracyImpact: 7, IsRecommended: true,
					Feedback: "Not your keys, not your coins; not your regulator, not your recourse."},
				{ID: 1762, Text: "Buy the crypto dip", WealthImpact: -3000, HappinessImpact: -2,
					Feedback: "Catching falling knives is a skill nobody actually has."},
			},
		},

		// ---- QUIZ ----
		{
			ID: 181, Title: "Quiz: The Rule of 72", Category: CategoryQuiz, Difficulty: 4, MinMonth: 24,
			Description: "At 12% annual returns, roughly how long does money take to double?",
			Choices: []Choice{
				{ID: 1811, Text: "About 6 years", LiteracyImpact: 10, HappinessImpact: 3, IsRecommended: true,
					Feedback: "Correct: 72 / 12 = 6 years. The rule of 72 is mental-math compounding."},
				{ID: 1812, Text: "About 12 years", LiteracyImpact: 2,
					Feedback: "Not quite: divide 72 by the rate. 72 / 12 = 6 years."},
			},
		},
		{
			ID: 182, Title: "Quiz: Real Returns", Category: CategoryQuiz, Difficulty: 4, MinMonth: 26,
			Description: "Your FD pays 7% while inflation runs at 6%. What is your real return?",
			Choices: []Choice{
				{ID: 1821, Text: "About 1%", LiteracyImpact: 10, HappinessImpact: 3, IsRecommended: true,
					Feedback: "Correct. Nominal minus inflation is what your money actually earns."},
				{ID: 1822, Text: "7%, obviously", LiteracyImpact: 2,
					Feedback: "Inflation quietly eats 6 of those 7 points."},
			},
		},

		// ---- TRAP ----
		{
			ID: 191, Title: "Guaranteed Doubling Scheme", Category: CategoryTrap, Difficulty: 4, MinMonth: 24,
			Description: "A 'chit fund' promises to double your money in 18 months, guaranteed, referrals rewarded.",
			Choices: []Choice{
				{ID: 1911, Text: "Walk away and warn your family", LiteracyImpact: 8, IsRecommended: true,
					Feedback: "Guaranteed doubling is the oldest Ponzi pitch in the book."},
				{ID: 1912, Text: "Invest ₹10,000 'just to test'", WealthImpact: -10000, HappinessImpact: -10, LiteracyImpact: 3,
					Feedback: "The test succeeded: it proved the scheme keeps your money."},
			},
		},
		{
			ID: 192, Title: "KBC Lottery SMS", Category: CategoryTrap, Difficulty: 4, MinMonth: 28,
			Description: "An SMS says you won ₹25 lakh in a lottery you never entered. Just pay a ₹5,000 'processing fee'.",
			Choices: []Choice{
				{ID: 1921, Text: "Block, report, delete", LiteracyImpact: 8, IsRecommended: true,
					Feedback: "You cannot win a lottery you never entered. Report it on the cybercrime portal."},
				{ID: 1922, Text: "Pay the processing fee", WealthImpact: -5000, HappinessImpact: -8,
					Feedback: "The only thing processed was your ₹5,000."},
			},
		},
		{
			ID: 193, Title: "Card 'KYC Update' Call", Category: CategoryTrap, Difficulty: 5, MinMonth: 36,
			Description: "A caller claiming to be from your bank wants your card number and OTP to 'keep it active'.",
			Choices: []Choice{
				{ID: 1931, Text: "Hang up and call the bank yourself", LiteracyImpact: 9, IsRecommended: true,
					Feedback: "Banks never ask for OTPs. Ever."},
				{ID: 1932, Text: "Share the OTP, sounds official", WealthImpact: -15000, HappinessImpact: -12,
					Feedback: "An OTP shared is an account emptied."},
			},
		},
	}
}
